package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	COLUMN_USERNAME_SIZE = 32
	COLUMN_EMAIL_SIZE    = 255
)

// on-disk layout of a row, no padding between fields
const (
	ID_SIZE       = 4
	USERNAME_SIZE = COLUMN_USERNAME_SIZE + 1 // +1 for the terminator byte
	EMAIL_SIZE    = COLUMN_EMAIL_SIZE + 1

	ID_OFFSET       = 0
	USERNAME_OFFSET = ID_OFFSET + ID_SIZE
	EMAIL_OFFSET    = USERNAME_OFFSET + USERNAME_SIZE

	ROW_SIZE = ID_SIZE + USERNAME_SIZE + EMAIL_SIZE
)

var (
	ErrNegativeID    = errors.New("id cannot be negative")
	ErrInvalidID     = errors.New("id is not a valid integer")
	ErrStringTooLong = errors.New("string is too long")
	ErrInvalidString = errors.New("string contains a NUL byte")
)

type Row struct {
	ID       uint32
	Username string
	Email    string
}

func (r Row) String() string {
	return fmt.Sprintf("[%d, %s, %s]", r.ID, r.Username, r.Email)
}

// Validate checks that the row fits the fixed column widths. The codec
// assumes this has already been done.
func (r Row) Validate() error {
	if err := validateColumn(r.Username, COLUMN_USERNAME_SIZE); err != nil {
		return fmt.Errorf("username: %w", err)
	}
	if err := validateColumn(r.Email, COLUMN_EMAIL_SIZE); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func validateColumn(s string, size int) error {
	if len(s) > size {
		return ErrStringTooLong
	}
	if strings.IndexByte(s, 0) >= 0 {
		return ErrInvalidString
	}
	return nil
}

// ParseRow builds a validated row from its textual fields.
func ParseRow(id, username, email string) (Row, error) {
	val, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if val < 0 {
		return Row{}, ErrNegativeID
	}
	if val > math.MaxUint32 {
		return Row{}, fmt.Errorf("%w: %d overflows uint32", ErrInvalidID, val)
	}

	row := Row{
		ID:       uint32(val),
		Username: username,
		Email:    email,
	}
	if err := row.Validate(); err != nil {
		return Row{}, err
	}
	return row, nil
}
