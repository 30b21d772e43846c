package review

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// Account layouts. Every record starts with a one-byte initialized flag,
// followed by its fields in declaration order: keys as raw 32 bytes,
// integers little-endian, strings with a u32 length prefix and no
// terminator. A record's capacity is fixed when its account is allocated;
// records never grow in place.

// ReviewRecord is one reviewer's review of one title.
type ReviewRecord struct {
	IsInitialized bool
	// Reviewer is set at creation and never mutated.
	Reviewer ed25519.PublicKey
	// Rating is always within [1, 5].
	Rating uint8
	// Title is immutable: it is part of the account's derived address.
	Title       string
	Description string
}

// ReviewRecordSize is the exact encoded size for the given content.
func ReviewRecordSize(title, description string) int {
	return 1 + ed25519.PublicKeySize + 1 + 4 + len(title) + 4 + len(description)
}

func (obj *ReviewRecord) Size() int {
	return ReviewRecordSize(obj.Title, obj.Description)
}

func (obj *ReviewRecord) Marshal() []byte {
	b := make([]byte, obj.Size())

	var offset int
	putBool(b, obj.IsInitialized, &offset)
	putKey(b, obj.Reviewer, &offset)
	putUint8(b, obj.Rating, &offset)
	putString(b, obj.Title, &offset)
	putString(b, obj.Description, &offset)

	return b
}

func (obj *ReviewRecord) Unmarshal(data []byte) error {
	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	if err := getKey(data, &obj.Reviewer, &offset); err != nil {
		return err
	}
	if err := getUint8(data, &obj.Rating, &offset); err != nil {
		return err
	}
	if err := getString(data, &obj.Title, &offset); err != nil {
		return err
	}
	return getString(data, &obj.Description, &offset)
}

func (obj *ReviewRecord) String() string {
	return fmt.Sprintf(
		"ReviewRecord{initialized=%t,reviewer=%s,rating=%d,title=%q}",
		obj.IsInitialized,
		base58.Encode(obj.Reviewer),
		obj.Rating,
		obj.Title,
	)
}

// CounterRecordSize covers the initialized flag and one u64.
const CounterRecordSize = 1 + 8

// CounterRecord is the program's single review counter. The count only
// ever increases: once per successful creation, never on update.
type CounterRecord struct {
	IsInitialized bool
	ReviewCount   uint64
}

func (obj *CounterRecord) Marshal() []byte {
	b := make([]byte, CounterRecordSize)

	var offset int
	putBool(b, obj.IsInitialized, &offset)
	putUint64(b, obj.ReviewCount, &offset)

	return b
}

func (obj *CounterRecord) Unmarshal(data []byte) error {
	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	return getUint64(data, &obj.ReviewCount, &offset)
}

// CommentCounterRecordSize covers the initialized flag and one u64.
const CommentCounterRecordSize = 1 + 8

// CommentCounterRecord numbers the comments of a single review so each
// comment's derived address stays deterministic.
type CommentCounterRecord struct {
	IsInitialized bool
	CommentCount  uint64
}

func (obj *CommentCounterRecord) Marshal() []byte {
	b := make([]byte, CommentCounterRecordSize)

	var offset int
	putBool(b, obj.IsInitialized, &offset)
	putUint64(b, obj.CommentCount, &offset)

	return b
}

func (obj *CommentCounterRecord) Unmarshal(data []byte) error {
	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	return getUint64(data, &obj.CommentCount, &offset)
}

// CommentRecord is one comment on one review.
type CommentRecord struct {
	IsInitialized bool
	Review        ed25519.PublicKey
	Commenter     ed25519.PublicKey
	Count         uint64
	Comment       string
}

// CommentRecordSize is the exact encoded size for the given comment.
func CommentRecordSize(comment string) int {
	return 1 + 2*ed25519.PublicKeySize + 8 + 4 + len(comment)
}

func (obj *CommentRecord) Size() int {
	return CommentRecordSize(obj.Comment)
}

func (obj *CommentRecord) Marshal() []byte {
	b := make([]byte, obj.Size())

	var offset int
	putBool(b, obj.IsInitialized, &offset)
	putKey(b, obj.Review, &offset)
	putKey(b, obj.Commenter, &offset)
	putUint64(b, obj.Count, &offset)
	putString(b, obj.Comment, &offset)

	return b
}

func (obj *CommentRecord) Unmarshal(data []byte) error {
	var offset int
	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	if err := getKey(data, &obj.Review, &offset); err != nil {
		return err
	}
	if err := getKey(data, &obj.Commenter, &offset); err != nil {
		return err
	}
	if err := getUint64(data, &obj.Count, &offset); err != nil {
		return err
	}
	return getString(data, &obj.Comment, &offset)
}

func (obj *CommentRecord) String() string {
	return fmt.Sprintf(
		"CommentRecord{initialized=%t,review=%s,commenter=%s,count=%d}",
		obj.IsInitialized,
		base58.Encode(obj.Review),
		base58.Encode(obj.Commenter),
		obj.Count,
	)
}

// isInitialized reports whether account data already holds an initialized
// record, without requiring the rest of the record to decode.
func isInitialized(data []byte) bool {
	return len(data) > 0 && data[0] == 1
}
