// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"encoding/hex"
	"math/bits"
	"strconv"
	"strings"

	dErrors "carbonledger/pkg/domain-errors"
)

// Address identifies a principal: a holder, issuer, certifier or fee collector.
// Stored lower-cased as 0x followed by 40 hex digits.
type Address string

// ZeroAddress is the null address. It is never a valid principal.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// Distinct numeric ID types - compiler prevents passing a ProjectID where a ListingID is expected.
type (
	ProjectID uint64
	BatchID   uint64
	ListingID uint64
	AssetID   uint64
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseAddress(s string) (Address, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	lower := strings.ToLower(s)
	if len(lower) != 42 || !strings.HasPrefix(lower, "0x") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex digits")
	}
	if _, err := hex.DecodeString(lower[2:]); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex digits")
	}
	return Address(lower), nil
}

func ParseProjectID(s string) (ProjectID, error) {
	id, err := parseUint(s, "project ID")
	return ProjectID(id), err
}

func ParseBatchID(s string) (BatchID, error) {
	id, err := parseUint(s, "batch ID")
	return BatchID(id), err
}

func ParseListingID(s string) (ListingID, error) {
	id, err := parseUint(s, "listing ID")
	return ListingID(id), err
}

func ParseAssetID(s string) (AssetID, error) {
	id, err := parseUint(s, "asset ID")
	return AssetID(id), err
}

// String methods - for logging and debugging.

func (a Address) String() string    { return string(a) }
func (id ProjectID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id BatchID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id ListingID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id AssetID) String() string   { return strconv.FormatUint(uint64(id), 10) }

// IsZero checks - id 0 is the "does not exist" sentinel for projects and listings.

func (a Address) IsZero() bool    { return a == "" || a == ZeroAddress }
func (id ProjectID) IsZero() bool { return id == 0 }
func (id ListingID) IsZero() bool { return id == 0 }

func parseUint(s, label string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return v, nil
}

// AssetKey is the explicit (project, batch) pair behind a numeric asset-id.
type AssetKey struct {
	ProjectID ProjectID
	BatchID   BatchID
}

// DefaultAssetMultiplier is the K in assetId = projectId*K + batchId.
const DefaultAssetMultiplier uint64 = 1_000_000

// AssetCodec converts between AssetKey and the numeric asset-id used at the
// Asset Ledger boundary.
type AssetCodec struct {
	multiplier uint64
}

// NewAssetCodec returns a codec for the given multiplier. A multiplier below 2
// would alias every batch of a project onto one asset-id.
func NewAssetCodec(multiplier uint64) (AssetCodec, error) {
	if multiplier < 2 {
		return AssetCodec{}, dErrors.New(dErrors.CodeInvalidInput, "asset multiplier must be at least 2")
	}
	return AssetCodec{multiplier: multiplier}, nil
}

// Multiplier returns K.
func (c AssetCodec) Multiplier() uint64 { return c.multiplier }

// MaxBatches is the number of batches a single project can issue before its
// ids would collide with the next project.
func (c AssetCodec) MaxBatches() uint64 { return c.multiplier }

// Encode derives the asset-id. batchId must be below K.
func (c AssetCodec) Encode(key AssetKey) (AssetID, error) {
	if uint64(key.BatchID) >= c.multiplier {
		return 0, dErrors.NewReason(dErrors.CodeCapacityExceeded, dErrors.ReasonBatchIndexExhausted,
			"batch index exceeds asset multiplier",
			"project_id", key.ProjectID, "batch_id", key.BatchID, "multiplier", c.multiplier)
	}
	hi, lo := bits.Mul64(uint64(key.ProjectID), c.multiplier)
	if hi != 0 {
		return 0, overflow("project_id", key.ProjectID)
	}
	sum, carry := bits.Add64(lo, uint64(key.BatchID), 0)
	if carry != 0 {
		return 0, overflow("project_id", key.ProjectID)
	}
	return AssetID(sum), nil
}

// Decode splits an asset-id into its (project, batch) pair.
func (c AssetCodec) Decode(id AssetID) AssetKey {
	return AssetKey{
		ProjectID: ProjectID(uint64(id) / c.multiplier),
		BatchID:   BatchID(uint64(id) % c.multiplier),
	}
}

// AddAmount adds two unit amounts, failing instead of wrapping.
func AddAmount(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, overflow("augend", a)
	}
	return sum, nil
}

// MulAmount multiplies two unit amounts, failing instead of wrapping.
func MulAmount(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, overflow("multiplicand", a)
	}
	return lo, nil
}

func overflow(key string, v any) error {
	return dErrors.NewReason(dErrors.CodeInvalidInput, dErrors.ReasonArithmeticOverflow,
		"arithmetic overflow", key, v)
}
