// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernels

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/format"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
)

const jsonRecordCount = 10_000

type recordMetadata struct {
	CreatedAt string
	UpdatedAt string
	Version   uint32
}

type record struct {
	ID       uint32
	Name     string
	Email    string
	Age      uint32
	Balance  float64
	IsActive bool
	Tags     []string
	Metadata recordMetadata
}

// generateRecords builds count synthetic user records.
func generateRecords(count int) []record {
	records := make([]record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, record{
			ID:       uint32(i),
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Age:      uint32(20 + i%50),
			Balance:  float64(i) * 123.456,
			IsActive: i%2 == 0,
			Tags: []string{
				fmt.Sprintf("tag%d", i%10),
				fmt.Sprintf("category%d", i%5),
				"important",
			},
			Metadata: recordMetadata{
				CreatedAt: "2024-01-01T00:00:00Z",
				UpdatedAt: "2024-01-02T00:00:00Z",
				Version:   uint32(i % 100),
			},
		})
	}
	return records
}

// escapeJSONString escapes the two characters the serializer can emit
// inside strings, quotes and backslashes.
func escapeJSONString(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func serializeRecord(b *strings.Builder, r *record) {
	b.WriteString(`{"id":`)
	b.WriteString(strconv.FormatUint(uint64(r.ID), 10))
	b.WriteString(`,"name":"`)
	b.WriteString(escapeJSONString(r.Name))
	b.WriteString(`","email":"`)
	b.WriteString(escapeJSONString(r.Email))
	b.WriteString(`","age":`)
	b.WriteString(strconv.FormatUint(uint64(r.Age), 10))
	b.WriteString(`,"balance":`)
	b.WriteString(strconv.FormatFloat(r.Balance, 'f', 3, 64))
	b.WriteString(`,"is_active":`)
	b.WriteString(strconv.FormatBool(r.IsActive))
	b.WriteString(`,"tags":[`)
	for i, tag := range r.Tags {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(escapeJSONString(tag))
		b.WriteByte('"')
	}
	b.WriteString(`],"metadata":{"created_at":"`)
	b.WriteString(escapeJSONString(r.Metadata.CreatedAt))
	b.WriteString(`","updated_at":"`)
	b.WriteString(escapeJSONString(r.Metadata.UpdatedAt))
	b.WriteString(`","version":`)
	b.WriteString(strconv.FormatUint(uint64(r.Metadata.Version), 10))
	b.WriteString("}}")
}

// serializeRecords renders the records as a JSON array. Balances are fixed
// to three decimals, so serialization is stable after one round trip.
func serializeRecords(records []record) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range records {
		if i > 0 {
			b.WriteByte(',')
		}
		serializeRecord(&b, &records[i])
	}
	b.WriteByte(']')
	return b.String()
}

// recordParser is a single-pass scanner over the subset of JSON the
// serializer emits. String escapes are limited to \" and \\.
type recordParser struct {
	input string
	pos   int
}

func (p *recordParser) errorf(msg string, args ...any) error {
	return fmt.Errorf("json offset %d: %s", p.pos, fmt.Sprintf(msg, args...))
}

func (p *recordParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *recordParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

// peek returns the next significant byte without consuming it.
func (p *recordParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *recordParser) readString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	start := p.pos
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '\\':
			return p.readEscapedString(start)
		case '"':
			s := p.input[start:p.pos]
			p.pos++
			return s, nil
		default:
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

// readEscapedString finishes reading a string that contains escapes, which
// is the slow path the serializer rarely produces.
func (p *recordParser) readEscapedString(start int) (string, error) {
	var b strings.Builder
	b.WriteString(p.input[start:p.pos])
	for p.pos < len(p.input) {
		switch c := p.input[p.pos]; c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", p.errorf("truncated escape")
			}
			next := p.input[p.pos+1]
			if next != '"' && next != '\\' {
				return "", p.errorf("unsupported escape \\%c", next)
			}
			b.WriteByte(next)
			p.pos += 2
		case '"':
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *recordParser) readNumberToken() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			p.pos++
		} else {
			break
		}
	}
	return p.input[start:p.pos]
}

func (p *recordParser) readUint32() (uint32, error) {
	p.skipSpace()
	v, err := strconv.ParseUint(p.readNumberToken(), 10, 32)
	if err != nil {
		return 0, p.errorf("bad integer: %v", err)
	}
	return uint32(v), nil
}

func (p *recordParser) readFloat() (float64, error) {
	p.skipSpace()
	v, err := strconv.ParseFloat(p.readNumberToken(), 64)
	if err != nil {
		return 0, p.errorf("bad number: %v", err)
	}
	return v, nil
}

func (p *recordParser) readBool() (bool, error) {
	p.skipSpace()
	rest := p.input[p.pos:]
	switch {
	case strings.HasPrefix(rest, "true"):
		p.pos += 4
		return true, nil
	case strings.HasPrefix(rest, "false"):
		p.pos += 5
		return false, nil
	}
	return false, p.errorf("bad boolean")
}

func (p *recordParser) readStringArray() ([]string, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return nil, nil
	}
	var out []string
	for {
		s, err := p.readString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)

		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated array")
		}
		p.pos++
		switch c {
		case ',':
		case ']':
			return out, nil
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

// readObject reads one object, invoking field for each key with the parser
// positioned at the value.
func (p *recordParser) readObject(field func(key string) error) error {
	if err := p.expect('{'); err != nil {
		return err
	}
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return nil
	}
	for {
		key, err := p.readString()
		if err != nil {
			return err
		}
		if err := p.expect(':'); err != nil {
			return err
		}
		if err := field(key); err != nil {
			return err
		}

		c, ok := p.peek()
		if !ok {
			return p.errorf("unterminated object")
		}
		p.pos++
		switch c {
		case ',':
		case '}':
			return nil
		default:
			return p.errorf("expected ',' or '}'")
		}
	}
}

func (p *recordParser) readMetadata() (recordMetadata, error) {
	var m recordMetadata
	err := p.readObject(func(key string) error {
		var err error
		switch key {
		case "created_at":
			m.CreatedAt, err = p.readString()
		case "updated_at":
			m.UpdatedAt, err = p.readString()
		case "version":
			m.Version, err = p.readUint32()
		default:
			err = p.errorf("unknown metadata key %q", key)
		}
		return err
	})
	return m, err
}

func (p *recordParser) readRecord() (record, error) {
	var r record
	err := p.readObject(func(key string) error {
		var err error
		switch key {
		case "id":
			r.ID, err = p.readUint32()
		case "name":
			r.Name, err = p.readString()
		case "email":
			r.Email, err = p.readString()
		case "age":
			r.Age, err = p.readUint32()
		case "balance":
			r.Balance, err = p.readFloat()
		case "is_active":
			r.IsActive, err = p.readBool()
		case "tags":
			r.Tags, err = p.readStringArray()
		case "metadata":
			r.Metadata, err = p.readMetadata()
		default:
			err = p.errorf("unknown record key %q", key)
		}
		return err
	})
	return r, err
}

// parseRecords scans a JSON array of records.
func parseRecords(input string) ([]record, error) {
	p := &recordParser{input: input}
	if err := p.expect('['); err != nil {
		return nil, err
	}
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return nil, nil
	}
	var records []record
	for {
		r, err := p.readRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, r)

		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated array")
		}
		p.pos++
		switch c {
		case ',':
		case ']':
			return records, nil
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

type jsonParse struct {
	clock clock.Clock
	count int
}

// NewJSONParse returns the serialization round-trip workload over ten
// thousand records.
func NewJSONParse(c clock.Clock) bench.Benchmark {
	return newJSONParse(c, jsonRecordCount)
}

func newJSONParse(c clock.Clock, count int) *jsonParse {
	return &jsonParse{clock: c, count: count}
}

func (j *jsonParse) Name() string { return "json_parse" }

func (j *jsonParse) Category() bench.Category { return bench.CategoryOther }

// Warmup parses one serialization of the full record set.
func (j *jsonParse) Warmup(ctx context.Context) error {
	input := serializeRecords(generateRecords(j.count))
	_, err := parseRecords(input)
	return err
}

func (j *jsonParse) Run(ctx context.Context) (bench.Result, error) {
	input := serializeRecords(generateRecords(j.count))

	start := j.clock.Now()
	parsed, err := parseRecords(input)
	parseElapsed := j.clock.Now().Sub(start)
	if err != nil {
		return bench.Result{}, fmt.Errorf("parse: %w", err)
	}

	start = j.clock.Now()
	serialized := serializeRecords(parsed)
	serializeElapsed := j.clock.Now().Sub(start)

	logger.Debugf("json_parse: parse %v, serialize %v, %s of JSON",
		parseElapsed, serializeElapsed, format.Bytes(float64(len(serialized))))

	return bench.Result{
		Elapsed:  parseElapsed + serializeElapsed,
		Checksum: fmt.Sprintf("records=%d bytes=%d", len(parsed), len(serialized)),
	}, nil
}
