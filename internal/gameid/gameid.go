// Package gameid generates match identifiers: UUIDv7 values rendered as
// 26-character Crockford base32 strings, so ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded id.
const Length = 26

// Generator produces match ids. A nil reader uses crypto randomness.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading random bits from r. Tests pass a
// deterministic reader; production code passes nil.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns a new id using crypto randomness.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new id. It panics only if the random source fails,
// which for crypto/rand means the process cannot continue anyway.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("gameid: failed to generate uuid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are treated as
// a 130-bit number with two leading zero bits, so the first character is 0-7.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := range Length {
		var v byte
		for b := range 5 {
			v <<= 1
			v |= bitAt(id, i*5+b-2)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Decode parses an id produced by Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for b := range 5 {
			pos := i*5 + b - 2
			if pos < 0 {
				continue
			}
			if v&(1<<(4-b)) != 0 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

func bitAt(id uuid.UUID, pos int) byte {
	if pos < 0 {
		return 0
	}
	return (id[pos/8] >> (7 - pos%8)) & 1
}

// Validate checks that id is 26 characters of the base32 alphabet and fits in 128 bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
