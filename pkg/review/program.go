// Package review implements an on-chain program that records movie
// reviews in program-derived accounts and rewards reviewers and
// commenters with a fungible token minted under the program's own
// derived authority.
package review

// Content limits bound the encoded size of a record so account
// allocation cost stays predictable.
const (
	// MaxTitleLength is the byte budget for a title. The title doubles as
	// a derivation seed, so it inherits the per-seed length limit.
	MaxTitleLength = 32

	// MaxContentLength is the combined byte budget for a review's title
	// and description.
	MaxContentLength = 800

	// MaxCommentLength is the byte budget for a single comment.
	MaxCommentLength = 500
)

// Reward configuration. Amounts are in base units of the reward mint.
const (
	RewardDecimals = 9

	rewardBaseUnit = 1_000_000_000

	// ReviewRewardAmount is minted to a reviewer once per created review,
	// never on update.
	ReviewRewardAmount = 10 * rewardBaseUnit

	// CommentRewardAmount is minted to a commenter once per comment.
	CommentRewardAmount = 5 * rewardBaseUnit
)
