package review

import (
	"crypto/ed25519"
	"math"

	"github.com/pkg/errors"

	"github.com/moviedao/review-program/pkg/solana"
	"github.com/moviedao/review-program/pkg/solana/system"
	"github.com/moviedao/review-program/pkg/solana/token"
)

type Command byte

const (
	CommandCreateReview Command = iota
	CommandUpdateReview
	CommandAddComment
	CommandInitializeMint

	CommandUnknown = Command(math.MaxUint8)
)

// UnpackCommand splits instruction data into its leading tag and payload.
func UnpackCommand(data []byte) (Command, []byte, error) {
	if len(data) == 0 {
		return CommandUnknown, nil, errors.Wrap(ErrTruncatedInstruction, "missing instruction tag")
	}
	return Command(data[0]), data[1:], nil
}

// ReviewArgs is the payload shared by CreateReview and UpdateReview.
type ReviewArgs struct {
	Title       string
	Rating      uint8
	Description string
}

func (a *ReviewArgs) Marshal() []byte {
	b := make([]byte, 4+len(a.Title)+1+4+len(a.Description))

	var offset int
	putString(b, a.Title, &offset)
	putUint8(b, a.Rating, &offset)
	putString(b, a.Description, &offset)

	return b
}

func (a *ReviewArgs) Unmarshal(data []byte) error {
	var offset int
	if err := getString(data, &a.Title, &offset); err != nil {
		return errors.Wrap(ErrTruncatedInstruction, "title")
	}
	if err := getUint8(data, &a.Rating, &offset); err != nil {
		return errors.Wrap(ErrTruncatedInstruction, "rating")
	}
	if err := getString(data, &a.Description, &offset); err != nil {
		return errors.Wrap(ErrTruncatedInstruction, "description")
	}
	return nil
}

// CommentArgs is the AddComment payload.
type CommentArgs struct {
	Comment string
}

func (a *CommentArgs) Marshal() []byte {
	b := make([]byte, 4+len(a.Comment))

	var offset int
	putString(b, a.Comment, &offset)

	return b
}

func (a *CommentArgs) Unmarshal(data []byte) error {
	var offset int
	if err := getString(data, &a.Comment, &offset); err != nil {
		return errors.Wrap(ErrTruncatedInstruction, "comment")
	}
	return nil
}

// NewCreateReviewInstruction builds the instruction a client submits to
// record a new review. All derived accounts are computed here so the
// on-chain side only has to verify them.
func NewCreateReviewInstruction(program, reviewer ed25519.PublicKey, args *ReviewArgs) (solana.Instruction, error) {
	reviewAddress, _, err := GetReviewAddress(program, reviewer, args.Title)
	if err != nil {
		return solana.Instruction{}, err
	}
	counterAddress, _, err := GetCounterAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	commentCounterAddress, _, err := GetCommentCounterAddress(program, reviewAddress)
	if err != nil {
		return solana.Instruction{}, err
	}
	mintAddress, _, err := GetMintAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	mintAuthorityAddress, _, err := GetMintAuthorityAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	tokenAccount, err := token.GetAssociatedAccount(reviewer, mintAddress)
	if err != nil {
		return solana.Instruction{}, err
	}

	return solana.NewInstruction(
		program,
		append([]byte{byte(CommandCreateReview)}, args.Marshal()...),
		solana.NewAccountMeta(reviewer, true),
		solana.NewAccountMeta(reviewAddress, false),
		solana.NewAccountMeta(counterAddress, false),
		solana.NewAccountMeta(commentCounterAddress, false),
		solana.NewAccountMeta(mintAddress, false),
		solana.NewReadonlyAccountMeta(mintAuthorityAddress, false),
		solana.NewAccountMeta(tokenAccount, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	), nil
}

// NewUpdateReviewInstruction builds the instruction a reviewer submits to
// revise the rating or description of an existing review.
func NewUpdateReviewInstruction(program, reviewer ed25519.PublicKey, args *ReviewArgs) (solana.Instruction, error) {
	reviewAddress, _, err := GetReviewAddress(program, reviewer, args.Title)
	if err != nil {
		return solana.Instruction{}, err
	}

	return solana.NewInstruction(
		program,
		append([]byte{byte(CommandUpdateReview)}, args.Marshal()...),
		solana.NewReadonlyAccountMeta(reviewer, true),
		solana.NewAccountMeta(reviewAddress, false),
	), nil
}

// NewAddCommentInstruction builds the instruction a client submits to
// comment on a review. The comment's address depends on how many comments
// the review already has, so callers pass the current count.
func NewAddCommentInstruction(program, commenter, reviewAddress ed25519.PublicKey, commentCount uint64, args *CommentArgs) (solana.Instruction, error) {
	commentCounterAddress, _, err := GetCommentCounterAddress(program, reviewAddress)
	if err != nil {
		return solana.Instruction{}, err
	}
	commentAddress, _, err := GetCommentAddress(program, reviewAddress, commentCount)
	if err != nil {
		return solana.Instruction{}, err
	}
	mintAddress, _, err := GetMintAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	mintAuthorityAddress, _, err := GetMintAuthorityAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	tokenAccount, err := token.GetAssociatedAccount(commenter, mintAddress)
	if err != nil {
		return solana.Instruction{}, err
	}

	return solana.NewInstruction(
		program,
		append([]byte{byte(CommandAddComment)}, args.Marshal()...),
		solana.NewAccountMeta(commenter, true),
		solana.NewReadonlyAccountMeta(reviewAddress, false),
		solana.NewAccountMeta(commentCounterAddress, false),
		solana.NewAccountMeta(commentAddress, false),
		solana.NewAccountMeta(mintAddress, false),
		solana.NewReadonlyAccountMeta(mintAuthorityAddress, false),
		solana.NewAccountMeta(tokenAccount, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	), nil
}

// NewInitializeMintInstruction builds the one-time instruction that
// creates the program's reward mint.
func NewInitializeMintInstruction(program, initializer ed25519.PublicKey) (solana.Instruction, error) {
	mintAddress, _, err := GetMintAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}
	mintAuthorityAddress, _, err := GetMintAuthorityAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}

	return solana.NewInstruction(
		program,
		[]byte{byte(CommandInitializeMint)},
		solana.NewAccountMeta(initializer, true),
		solana.NewAccountMeta(mintAddress, false),
		solana.NewReadonlyAccountMeta(mintAuthorityAddress, false),
		solana.NewReadonlyAccountMeta(system.ProgramKey[:], false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	), nil
}
