package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FloorPair is one passenger in an arrival record: origin and target floor.
type FloorPair struct {
	Start  int `json:"start"`
	Target int `json:"target"`
}

// ArrivalRecord lists the passengers arriving in one round.
// On disk: round, start_a, target_a[, start_b, target_b ...]
type ArrivalRecord struct {
	Round int         `json:"round"`
	Pairs []FloorPair `json:"pairs"`
}

// ReadArrivalRecords parses every record from r. Blank lines are skipped;
// any non-integer field or odd number of floor values is ErrMalformedInput.
func ReadArrivalRecords(r io.Reader) ([]ArrivalRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var records []ArrivalRecord
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(fields []string) (ArrivalRecord, error) {
	// a trailing comma leaves an empty last field
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 {
		return ArrivalRecord{}, fmt.Errorf("empty record")
	}
	nums := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return ArrivalRecord{}, fmt.Errorf("field %d: %q is not an integer", i+1, f)
		}
		nums[i] = v
	}
	floors := nums[1:]
	if len(floors)%2 != 0 {
		return ArrivalRecord{}, fmt.Errorf("round %d: odd number of floor values (%d)", nums[0], len(floors))
	}
	rec := ArrivalRecord{Round: nums[0], Pairs: make([]FloorPair, 0, len(floors)/2)}
	for i := 0; i < len(floors); i += 2 {
		rec.Pairs = append(rec.Pairs, FloorPair{Start: floors[i], Target: floors[i+1]})
	}
	return rec, nil
}

// WriteArrivalRecords writes records in the format ReadArrivalRecords accepts.
func WriteArrivalRecords(w io.Writer, records []ArrivalRecord) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		row := make([]string, 0, 1+2*len(rec.Pairs))
		row = append(row, strconv.Itoa(rec.Round))
		for _, p := range rec.Pairs {
			row = append(row, strconv.Itoa(p.Start), strconv.Itoa(p.Target))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write round %d: %w", rec.Round, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
