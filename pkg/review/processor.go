package review

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/moviedao/review-program/pkg/runtime"
	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/solana/system"
	"github.com/moviedao/review-program/pkg/solana/token"
)

// Account counts per instruction. Order is fixed; see the corresponding
// New*Instruction builders.
const (
	createReviewAccountLen   = 9
	updateReviewAccountLen   = 2
	addCommentAccountLen     = 9
	initializeMintAccountLen = 5
)

// Processor is the program's entry point. It owns no state of its own;
// everything it reads or writes lives in the accounts the host supplies.
type Processor struct {
	log *logrus.Entry
}

func NewProcessor() *Processor {
	return &Processor{
		log: logrus.StandardLogger().WithField("type", "review/processor"),
	}
}

// Process decodes the instruction tag and routes to the matching handler.
// Any returned error aborts the instruction; the host discards all writes.
// Failures are surfaced as a solana.InstructionError carrying the single
// external status for the internal error, with the cause left on the
// unwrap chain.
func (p *Processor) Process(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	if err := p.process(env, program, accounts, data); err != nil {
		return solana.NewInstructionError(ExternalStatus(err), err)
	}
	return nil
}

func (p *Processor) process(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	command, payload, err := UnpackCommand(data)
	if err != nil {
		return err
	}

	switch command {
	case CommandCreateReview:
		var args ReviewArgs
		if err := args.Unmarshal(payload); err != nil {
			return err
		}
		return p.createReview(env, program, accounts, &args)
	case CommandUpdateReview:
		var args ReviewArgs
		if err := args.Unmarshal(payload); err != nil {
			return err
		}
		return p.updateReview(env, program, accounts, &args)
	case CommandAddComment:
		var args CommentArgs
		if err := args.Unmarshal(payload); err != nil {
			return err
		}
		return p.addComment(env, program, accounts, &args)
	case CommandInitializeMint:
		return p.initializeMint(env, program, accounts)
	default:
		return errors.Wrapf(ErrUnknownInstruction, "tag %d", command)
	}
}

func (p *Processor) createReview(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, args *ReviewArgs) error {
	if len(accounts) < createReviewAccountLen {
		return errors.Wrapf(ErrNotEnoughAccounts, "got %d", len(accounts))
	}

	reviewer := accounts[0]
	reviewAccount := accounts[1]
	counter := accounts[2]
	commentCounter := accounts[3]
	mint := accounts[4]
	mintAuthority := accounts[5]
	reviewerTokenAccount := accounts[6]
	tokenProgram := accounts[8]

	log := p.log.WithFields(logrus.Fields{
		"method": "createReview",
		"title":  args.Title,
		"rating": args.Rating,
	})

	if err := ValidateAccount(reviewer, true, true, nil, nil); err != nil {
		return err
	}
	if err := ValidateAccount(reviewAccount, false, true, nil, nil); err != nil {
		return err
	}

	if err := validateRating(args.Rating); err != nil {
		return err
	}
	if err := validateReviewContent(args.Title, args.Description); err != nil {
		return err
	}

	reviewAddress, reviewBump, err := GetReviewAddress(program, reviewer.Key, args.Title)
	if err != nil {
		return errors.Wrap(err, "failed to derive review address")
	}
	if !reviewAccount.HasAddress(reviewAddress) {
		return errors.Wrap(ErrInvalidSeeds, "review account")
	}

	// Reject before allocating anything. A repeated create with the same
	// (reviewer, title) lands here: the derived account already holds an
	// initialized record and is never overwritten.
	if isInitialized(reviewAccount.Data) {
		return errors.Wrap(ErrAlreadyInitialized, "review account")
	}

	// Capacity is decided once, from the initial content. Updates must
	// fit this allocation forever.
	size := ReviewRecordSize(args.Title, args.Description)
	err = env.Invoke(
		system.CreateAccount(reviewer.Key, reviewAddress, program, env.MinimumBalance(size), uint64(size)),
		runtime.SignerSeeds{reviewSeed, reviewer.Key, []byte(args.Title), {reviewBump}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to allocate review account")
	}

	record := &ReviewRecord{
		IsInitialized: true,
		Reviewer:      reviewer.Key,
		Rating:        args.Rating,
		Title:         args.Title,
		Description:   args.Description,
	}
	copy(reviewAccount.Data, record.Marshal())

	count, err := p.incrementReviewCounter(env, program, reviewer, counter)
	if err != nil {
		return err
	}

	if err := p.initializeCommentCounter(env, program, reviewer, reviewAccount, commentCounter); err != nil {
		return err
	}

	log.WithField("review_count", count).Debug("review created")

	// The reward is minted exactly once, only after every state write
	// above has succeeded. There is no retry: minting is not idempotent.
	return p.mintReward(env, program, reviewer, mint, mintAuthority, reviewerTokenAccount, tokenProgram, ReviewRewardAmount)
}

func (p *Processor) updateReview(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, args *ReviewArgs) error {
	if len(accounts) < updateReviewAccountLen {
		return errors.Wrapf(ErrNotEnoughAccounts, "got %d", len(accounts))
	}

	reviewer := accounts[0]
	reviewAccount := accounts[1]

	if err := ValidateAccount(reviewer, true, false, nil, nil); err != nil {
		return err
	}

	reviewAddress, _, err := GetReviewAddress(program, reviewer.Key, args.Title)
	if err != nil {
		return errors.Wrap(err, "failed to derive review address")
	}
	if err := ValidateAccount(reviewAccount, false, true, program, reviewAddress); err != nil {
		return err
	}

	var record ReviewRecord
	if err := record.Unmarshal(reviewAccount.Data); err != nil {
		return err
	}
	if !record.IsInitialized {
		return errors.Wrap(ErrNotInitialized, "review account")
	}

	// Content ownership is independent of program ownership: only the
	// wallet that wrote the review may revise it.
	if !bytes.Equal(record.Reviewer, reviewer.Key) {
		return errors.Wrap(ErrorReviewerMismatch, "signer did not author this review")
	}

	if err := validateRating(args.Rating); err != nil {
		return err
	}
	if err := validateReviewContent(args.Title, args.Description); err != nil {
		return err
	}

	// No reallocation path exists: content that outgrows the account's
	// original capacity is rejected.
	if ReviewRecordSize(args.Title, args.Description) > len(reviewAccount.Data) {
		return errors.Wrap(ErrorCapacityExceeded, "description exceeds allocated capacity")
	}

	record.Rating = args.Rating
	record.Description = args.Description
	copy(reviewAccount.Data, record.Marshal())

	p.log.WithFields(logrus.Fields{
		"method": "updateReview",
		"title":  args.Title,
		"rating": args.Rating,
	}).Debug("review updated")

	return nil
}

func (p *Processor) addComment(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo, args *CommentArgs) error {
	if len(accounts) < addCommentAccountLen {
		return errors.Wrapf(ErrNotEnoughAccounts, "got %d", len(accounts))
	}

	commenter := accounts[0]
	reviewAccount := accounts[1]
	commentCounter := accounts[2]
	commentAccount := accounts[3]
	mint := accounts[4]
	mintAuthority := accounts[5]
	commenterTokenAccount := accounts[6]
	tokenProgram := accounts[8]

	if err := ValidateAccount(commenter, true, true, nil, nil); err != nil {
		return err
	}
	if err := ValidateAccount(reviewAccount, false, false, program, nil); err != nil {
		return err
	}
	if !isInitialized(reviewAccount.Data) {
		return errors.Wrap(ErrNotInitialized, "review account")
	}

	if err := validateComment(args.Comment); err != nil {
		return err
	}

	commentCounterAddress, _, err := GetCommentCounterAddress(program, reviewAccount.Key)
	if err != nil {
		return errors.Wrap(err, "failed to derive comment counter address")
	}
	if err := ValidateAccount(commentCounter, false, true, program, commentCounterAddress); err != nil {
		return err
	}

	var counterRecord CommentCounterRecord
	if err := counterRecord.Unmarshal(commentCounter.Data); err != nil {
		return err
	}
	if !counterRecord.IsInitialized {
		return errors.Wrap(ErrNotInitialized, "comment counter")
	}

	commentAddress, commentBump, err := GetCommentAddress(program, reviewAccount.Key, counterRecord.CommentCount)
	if err != nil {
		return errors.Wrap(err, "failed to derive comment address")
	}
	if !commentAccount.HasAddress(commentAddress) {
		return errors.Wrap(ErrInvalidSeeds, "comment account")
	}
	if isInitialized(commentAccount.Data) {
		return errors.Wrap(ErrAlreadyInitialized, "comment account")
	}

	var countSeed [8]byte
	binary.BigEndian.PutUint64(countSeed[:], counterRecord.CommentCount)

	size := CommentRecordSize(args.Comment)
	err = env.Invoke(
		system.CreateAccount(commenter.Key, commentAddress, program, env.MinimumBalance(size), uint64(size)),
		runtime.SignerSeeds{reviewAccount.Key, countSeed[:], {commentBump}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to allocate comment account")
	}

	record := &CommentRecord{
		IsInitialized: true,
		Review:        reviewAccount.Key,
		Commenter:     commenter.Key,
		Count:         counterRecord.CommentCount,
		Comment:       args.Comment,
	}
	copy(commentAccount.Data, record.Marshal())

	if counterRecord.CommentCount == math.MaxUint64 {
		return errors.Wrap(ErrCounterOverflow, "comment counter")
	}
	counterRecord.CommentCount++
	copy(commentCounter.Data, counterRecord.Marshal())

	p.log.WithFields(logrus.Fields{
		"method": "addComment",
		"review": reviewAccount.String(),
		"count":  record.Count,
	}).Debug("comment added")

	return p.mintReward(env, program, commenter, mint, mintAuthority, commenterTokenAccount, tokenProgram, CommentRewardAmount)
}

func (p *Processor) initializeMint(env runtime.Env, program ed25519.PublicKey, accounts []*runtime.AccountInfo) error {
	if len(accounts) < initializeMintAccountLen {
		return errors.Wrapf(ErrNotEnoughAccounts, "got %d", len(accounts))
	}

	initializer := accounts[0]
	mint := accounts[1]
	mintAuthority := accounts[2]
	tokenProgram := accounts[4]

	if err := ValidateAccount(initializer, true, true, nil, nil); err != nil {
		return err
	}

	mintAddress, mintBump, err := GetMintAddress(program)
	if err != nil {
		return errors.Wrap(err, "failed to derive mint address")
	}
	if !mint.HasAddress(mintAddress) {
		return errors.Wrap(ErrorIncorrectAccount, "mint")
	}

	mintAuthorityAddress, _, err := GetMintAuthorityAddress(program)
	if err != nil {
		return errors.Wrap(err, "failed to derive mint authority address")
	}
	if !mintAuthority.HasAddress(mintAuthorityAddress) {
		return errors.Wrap(ErrorIncorrectAccount, "mint authority")
	}
	if !tokenProgram.HasAddress(token.ProgramKey) {
		return errors.Wrap(ErrorIncorrectAccount, "token program")
	}

	err = env.Invoke(
		system.CreateAccount(initializer.Key, mintAddress, token.ProgramKey, env.MinimumBalance(token.MintSize), token.MintSize),
		runtime.SignerSeeds{mintSeed, {mintBump}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to allocate mint account")
	}

	err = env.Invoke(token.InitializeMint2(mintAddress, mintAuthorityAddress, nil, RewardDecimals))
	if err != nil {
		return errors.Wrap(err, "failed to initialize mint")
	}

	p.log.WithField("method", "initializeMint").Debug("reward mint initialized")

	return nil
}

// incrementReviewCounter is the counter store's read-and-increment. The
// counter account is created and zeroed lazily on the first review in the
// program's lifetime. The returned count is informational; review
// addressing never depends on it.
func (p *Processor) incrementReviewCounter(env runtime.Env, program ed25519.PublicKey, payer, counter *runtime.AccountInfo) (uint64, error) {
	counterAddress, counterBump, err := GetCounterAddress(program)
	if err != nil {
		return 0, errors.Wrap(err, "failed to derive counter address")
	}
	if err := ValidateAccount(counter, false, true, nil, counterAddress); err != nil {
		return 0, err
	}

	var record CounterRecord
	if len(counter.Data) == 0 {
		err = env.Invoke(
			system.CreateAccount(payer.Key, counterAddress, program, env.MinimumBalance(CounterRecordSize), CounterRecordSize),
			runtime.SignerSeeds{counterSeed, {counterBump}},
		)
		if err != nil {
			return 0, errors.Wrap(err, "failed to allocate counter account")
		}
		record = CounterRecord{IsInitialized: true}
	} else {
		if err := ValidateAccount(counter, false, true, program, counterAddress); err != nil {
			return 0, err
		}
		if err := record.Unmarshal(counter.Data); err != nil {
			return 0, err
		}
		record.IsInitialized = true
	}

	if record.ReviewCount == math.MaxUint64 {
		return 0, errors.Wrap(ErrCounterOverflow, "review counter")
	}
	record.ReviewCount++
	copy(counter.Data, record.Marshal())

	return record.ReviewCount, nil
}

// initializeCommentCounter allocates the comment numbering account for a
// freshly created review.
func (p *Processor) initializeCommentCounter(env runtime.Env, program ed25519.PublicKey, payer, reviewAccount, commentCounter *runtime.AccountInfo) error {
	address, bump, err := GetCommentCounterAddress(program, reviewAccount.Key)
	if err != nil {
		return errors.Wrap(err, "failed to derive comment counter address")
	}
	if err := ValidateAccount(commentCounter, false, true, nil, address); err != nil {
		return err
	}
	if isInitialized(commentCounter.Data) {
		return errors.Wrap(ErrAlreadyInitialized, "comment counter")
	}

	err = env.Invoke(
		system.CreateAccount(payer.Key, address, program, env.MinimumBalance(CommentCounterRecordSize), CommentCounterRecordSize),
		runtime.SignerSeeds{reviewAccount.Key, commentCounterSeed, {bump}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to allocate comment counter account")
	}

	record := CommentCounterRecord{IsInitialized: true}
	copy(commentCounter.Data, record.Marshal())

	return nil
}

// mintReward issues the fixed reward to the recipient's associated token
// account via the token program, signed with the mint authority's seeds.
// A failure is propagated verbatim and never retried.
func (p *Processor) mintReward(env runtime.Env, program ed25519.PublicKey, recipient, mint, mintAuthority, destination, tokenProgram *runtime.AccountInfo, amount uint64) error {
	mintAddress, _, err := GetMintAddress(program)
	if err != nil {
		return errors.Wrap(err, "failed to derive mint address")
	}
	if !mint.HasAddress(mintAddress) {
		return errors.Wrap(ErrorIncorrectAccount, "mint")
	}

	mintAuthorityAddress, authorityBump, err := GetMintAuthorityAddress(program)
	if err != nil {
		return errors.Wrap(err, "failed to derive mint authority address")
	}
	if !mintAuthority.HasAddress(mintAuthorityAddress) {
		return errors.Wrap(ErrorIncorrectAccount, "mint authority")
	}

	tokenAccount, err := token.GetAssociatedAccount(recipient.Key, mintAddress)
	if err != nil {
		return errors.Wrap(err, "failed to derive associated token account")
	}
	if !destination.HasAddress(tokenAccount) {
		return errors.Wrap(ErrorIncorrectAccount, "recipient token account")
	}
	if !tokenProgram.HasAddress(token.ProgramKey) {
		return errors.Wrap(ErrorIncorrectAccount, "token program")
	}

	err = env.Invoke(
		token.MintTo(mintAddress, tokenAccount, mintAuthorityAddress, amount),
		runtime.SignerSeeds{mintAuthoritySeed, {authorityBump}},
	)
	if err != nil {
		return errors.Wrap(err, "reward mint rejected")
	}

	p.log.WithFields(logrus.Fields{
		"recipient": recipient.String(),
		"amount":    amount,
	}).Debug("reward minted")

	return nil
}

func validateRating(rating uint8) error {
	if rating < 1 || rating > 5 {
		return errors.Wrapf(ErrorInvalidRating, "rating %d out of range", rating)
	}
	return nil
}

func validateReviewContent(title, description string) error {
	if len(title) == 0 || len(description) == 0 {
		return errors.Wrap(ErrorInvalidDataLength, "title and description must be non-empty")
	}
	if len(title) > MaxTitleLength {
		return errors.Wrapf(ErrorInvalidDataLength, "title exceeds %d bytes", MaxTitleLength)
	}
	if len(title)+len(description) > MaxContentLength {
		return errors.Wrapf(ErrorInvalidDataLength, "content exceeds %d bytes", MaxContentLength)
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) == 0 {
		return errors.Wrap(ErrorInvalidDataLength, "comment must be non-empty")
	}
	if len(comment) > MaxCommentLength {
		return errors.Wrapf(ErrorInvalidDataLength, "comment exceeds %d bytes", MaxCommentLength)
	}
	return nil
}
