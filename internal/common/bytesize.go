// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package common

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Common units for sizes in bytes.
const (
	Byte     = ByteSize(1)
	KiloByte = 1024 * Byte
	MegaByte = 1024 * KiloByte
	GigaByte = 1024 * MegaByte
)

const (
	byteString     = "B"
	kiloByteString = "KB"
	megaByteString = "MB"
	gigaByteString = "GB"
)

// ByteSize represents a count of bytes, used for config values such as
// indexer_max_chunk_bytes that accept either a plain integer or a
// "<n><unit>" string like "5MB".
type ByteSize uint64

var (
	_ json.Marshaler   = new(ByteSize)
	_ json.Unmarshaler = new(ByteSize)
	_ yaml.Marshaler   = new(ByteSize)
	_ yaml.Unmarshaler = new(ByteSize)
)

func parseByteCount(s string) (uint64, error) {
	const maxBitSize = 63
	return strconv.ParseUint(s, 10, maxBitSize)
}

// MarshalJSON returns the string representation in a format that can be
// unmarshaled back to an equivalent value.
func (s ByteSize) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML returns the string representation in a format that can be
// unmarshaled back to an equivalent value.
func (s ByteSize) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *ByteSize) UnmarshalJSON(d []byte) error {
	// Support unquoted plain numbers.
	n, err := parseByteCount(string(d))
	if err == nil {
		*s = ByteSize(n)
		return nil
	}

	var text string
	err = json.Unmarshal(d, &text)
	if err != nil {
		return err
	}

	return s.unmarshalString(text)
}

func (s *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	// Support unquoted plain numbers.
	n, err := parseByteCount(value.Value)
	if err == nil {
		*s = ByteSize(n)
		return nil
	}

	return s.unmarshalString(value.Value)
}

// Humanize renders s using SI-style units (go-humanize), for log lines
// where the strict KB=1024 §6 config format would read oddly (e.g. batch
// size progress messages in the ingest pipeline).
func (s ByteSize) Humanize() string {
	return humanize.Bytes(uint64(s))
}

var bytesPattern = regexp.MustCompile(fmt.Sprintf(`^(\d+(\.\d+)?)(%s|%s|%s|%s|)$`, byteString, kiloByteString, megaByteString, gigaByteString))

func (s *ByteSize) unmarshalString(text string) error {
	match := bytesPattern.FindStringSubmatch(text)
	if len(match) < 3 {
		return fmt.Errorf("invalid format for size in bytes (%s)", text)
	}

	if match[2] == "" {
		q, err := parseByteCount(match[1])
		if err != nil {
			return fmt.Errorf("invalid format for size in bytes (%s): %w", text, err)
		}

		unit := match[3]
		switch unit {
		case gigaByteString:
			*s = ByteSize(q) * GigaByte
		case megaByteString:
			*s = ByteSize(q) * MegaByte
		case kiloByteString:
			*s = ByteSize(q) * KiloByte
		case byteString, "":
			*s = ByteSize(q) * Byte
		default:
			return fmt.Errorf("invalid unit for filesize (%s): %s", text, unit)
		}
	} else {
		q, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return fmt.Errorf("invalid format for size in bytes (%s): %w", text, err)
		}

		unit := match[3]
		switch unit {
		case gigaByteString:
			*s = approxFloat(q, GigaByte)
		case megaByteString:
			*s = approxFloat(q, MegaByte)
		case kiloByteString:
			*s = approxFloat(q, KiloByte)
		case byteString, "":
			*s = approxFloat(q, Byte)
		default:
			return fmt.Errorf("invalid unit for filesize (%s): %s", text, unit)
		}
	}

	return nil
}

func approxFloat(n float64, unit ByteSize) ByteSize {
	approx := n * float64(unit)
	return ByteSize(math.Round(approx))
}

// String returns the string representation of the ByteSize.
func (s ByteSize) String() string {
	format := func(q ByteSize, unit string) string {
		return fmt.Sprintf("%d%s", q, unit)
	}

	if s >= GigaByte && (s%GigaByte == 0) {
		return format(s/GigaByte, gigaByteString)
	}

	if s >= MegaByte && (s%MegaByte == 0) {
		return format(s/MegaByte, megaByteString)
	}

	if s >= KiloByte && (s%KiloByte == 0) {
		return format(s/KiloByte, kiloByteString)
	}

	return format(s, byteString)
}
