package zip

import "time"

// dosEpoch is the earliest instant representable in DOS date/time fields.
var dosEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// dosMax is the latest instant representable: year 1980+127=2107, the
// last day of December, 23:59:58 (DOS time has 2-second resolution).
var dosMax = time.Date(2107, time.December, 31, 23, 59, 58, 0, time.UTC)

// timeToDOS encodes t into the 16-bit DOS date/time pair used by the LFH
// and CDH, saturating to dosEpoch or dosMax on underflow/overflow.
func timeToDOS(t time.Time) (date, dtime uint16) {
	t = t.UTC()
	switch {
	case t.Before(dosEpoch):
		t = dosEpoch
	case t.After(dosMax):
		t = dosMax
	}

	date = uint16(t.Day()) | uint16(t.Month())<<5 | uint16(t.Year()-1980)<<9
	dtime = uint16(t.Second()/2) | uint16(t.Minute())<<5 | uint16(t.Hour())<<11
	return date, dtime
}

// dosToTime decodes a DOS date/time pair into a time.Time, the inverse of
// timeToDOS (2-second resolution, UTC; DOS fields carry no timezone).
func dosToTime(date, dtime uint16) time.Time {
	return time.Date(
		int(date>>9)+1980,
		time.Month(date>>5&0xf),
		int(date&0x1f),
		int(dtime>>11),
		int(dtime>>5&0x3f),
		int(dtime&0x1f)*2,
		0,
		time.UTC,
	)
}
