package types

import (
	"fmt"
	"math/bits"
	"strconv"
	"time"
)

// Timestamp is chain time in nanoseconds since the unix epoch.
type Timestamp uint64

func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

// PlusSeconds returns t+s seconds, failing with ErrOverflow past the uint64 range.
func (t Timestamp) PlusSeconds(s uint64) (Timestamp, error) {
	hi, delta := bits.Mul64(s, uint64(time.Second))
	sum, carry := bits.Add64(uint64(t), delta, 0)
	if hi != 0 || carry != 0 {
		return 0, fmt.Errorf("%d + %ds: %w", uint64(t), s, ErrOverflow)
	}
	return Timestamp(sum), nil
}

func (t Timestamp) Nanos() uint64 {
	return uint64(t)
}

func (t Timestamp) Seconds() uint64 {
	return uint64(t) / uint64(time.Second)
}

func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// MarshalJSON keeps nanoseconds as a string, 64-bit integers are not safe in JSON clients.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(uint64(t), 10))), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*t = Timestamp(n)
	return nil
}
