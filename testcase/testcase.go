// Package testcase decodes the JSON test-case format into points the
// reconstruction engine can consume. A test case holds a "keys" object with
// the share count n and threshold k, plus one entry per share keyed by its
// decimal x-coordinate:
//
//	{
//	  "keys": { "n": 4, "k": 3 },
//	  "1": { "base": "10", "value": "4" },
//	  "2": { "base": "2",  "value": "111" },
//	  ...
//	}
//
// Each share's y-value is written in the given radix (2 through 36, digits
// beyond 9 as case-insensitive letters).
package testcase

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"

	"github.com/polyrecon/recon"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Share is one encoded share entry.
type Share struct {
	Base  string `json:"base"`
	Value string `json:"value"`
}

type keyInfo struct {
	N int `json:"n"`
	K int `json:"k"`
}

// TestCase is a decoded problem instance: the threshold, the declared share
// count, and the decoded points sorted by x.
type TestCase struct {
	N      int
	K      int
	Points []recon.Point
}

// ParseFile reads and parses a test case from path.
func ParseFile(path string) (*TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test case: %w", err)
	}

	return Parse(data)
}

// Parse decodes a test case. It validates the declared n and k, decodes
// every share, and requires at least k shares with pairwise-distinct
// x-coordinates. Individual share failures are collected so one pass
// reports every bad entry.
func Parse(data []byte) (*TestCase, error) {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test case: %w", err)
	}

	rawKeys, ok := raw["keys"]
	if !ok {
		return nil, errors.New(`test case has no "keys" object`)
	}

	var keys keyInfo
	if err := json.Unmarshal(rawKeys, &keys); err != nil {
		return nil, fmt.Errorf(`failed to parse "keys" object: %w`, err)
	}
	if keys.K < 1 {
		return nil, fmt.Errorf("threshold k must be at least 1, got %d", keys.K)
	}
	if keys.N < keys.K {
		return nil, fmt.Errorf("share count n (%d) must be at least the threshold k (%d)", keys.N, keys.K)
	}

	// map order is random; walk entries sorted by key so aggregated
	// errors come out stable
	names := make([]string, 0, len(raw)-1)
	for name := range raw {
		if name != "keys" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var errs *multierror.Error

	points := make([]recon.Point, 0, len(names))
	for _, name := range names {
		p, err := decodeShare(name, raw[name])
		if err != nil {
			errs = multierror.Append(errs, err)

			continue
		}
		points = append(points, p)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if len(points) < keys.K {
		return nil, fmt.Errorf("not enough shares: need %d, got %d", keys.K, len(points))
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].X.Cmp(points[j].X) < 0
	})
	for i := 1; i < len(points); i++ {
		if points[i].X.Cmp(points[i-1].X) == 0 {
			return nil, fmt.Errorf("duplicate share key %s", points[i].X)
		}
	}

	return &TestCase{N: keys.N, K: keys.K, Points: points}, nil
}

func decodeShare(name string, msg jsoniter.RawMessage) (recon.Point, error) {
	x, ok := new(big.Int).SetString(name, 10)
	if !ok {
		return recon.Point{}, fmt.Errorf("share %q: key is not a decimal integer", name)
	}

	var sh Share
	if err := json.Unmarshal(msg, &sh); err != nil {
		return recon.Point{}, fmt.Errorf("share %q: %w", name, err)
	}

	base, err := strconv.Atoi(sh.Base)
	if err != nil {
		return recon.Point{}, fmt.Errorf("share %q: invalid base %q", name, sh.Base)
	}

	y, err := DecodeValue(sh.Value, base)
	if err != nil {
		return recon.Point{}, fmt.Errorf("share %q: %w", name, err)
	}

	return recon.Point{X: x, Y: y}, nil
}

// DecodeValue decodes a non-negative integer written in the given radix.
// The base must be in [2, 36]; digits beyond 9 are letters in either case.
func DecodeValue(value string, base int) (*big.Int, error) {
	if base < 2 || base > 36 {
		return nil, fmt.Errorf("base %d out of range [2, 36]", base)
	}
	if value == "" {
		return nil, errors.New("empty value")
	}
	if value[0] == '+' || value[0] == '-' {
		return nil, fmt.Errorf("value %q must be an unsigned integer", value)
	}

	y, ok := new(big.Int).SetString(value, base)
	if !ok {
		return nil, fmt.Errorf("%q is not a base-%d integer", value, base)
	}

	return y, nil
}
