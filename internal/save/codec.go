package save

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
	"lukechampine.com/blake3"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/sim"
)

// Encode wraps a state in a current-schema envelope. The payload is the
// snappy-compressed JSON encoding of the state; JSON field order follows
// struct declaration order and the state holds no maps, so the encoding is
// canonical and the digest is stable across runs and platforms.
//
// A state with non-finite floats fails with ErrInvariantViolation before any
// bytes are produced, so callers can tell a corrupt simulation apart from an
// IO failure.
func Encode(st *sim.State, tun *config.Tuning, createdAt, savedAt int64) (*Envelope, error) {
	if err := checkFinite(st); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("save: marshal payload: %w", err)
	}
	payload := snappy.Encode(nil, raw)
	return &Envelope{
		Schema:     CurrentSchema,
		TuningHash: tun.Hash(),
		CreatedAt:  createdAt,
		SavedAt:    savedAt,
		Digest:     payloadDigest(payload),
		Payload:    payload,
	}, nil
}

// Decode verifies and unpacks an envelope into a validated state.
//
// Stage 1 rejects on unsupported schema, digest mismatch and tuning-hash
// mismatch (a migrating load tolerates the changed hash). Stage 2 is the
// semantic validation in Validate.
func Decode(env *Envelope, tun *config.Tuning) (*sim.State, error) {
	if env.Schema < SchemaV1 || env.Schema > CurrentSchema {
		return nil, fmt.Errorf("%w: schema %d", ErrUnsupportedSchema, env.Schema)
	}
	if payloadDigest(env.Payload) != env.Digest {
		return nil, ErrIntegrityMismatch
	}
	if env.Schema == CurrentSchema && env.TuningHash != tun.Hash() {
		return nil, ErrTuningMismatch
	}

	raw, err := snappy.Decode(nil, env.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %v", ErrDecodeFailed, err)
	}

	var st *sim.State
	switch env.Schema {
	case SchemaV1:
		st, err = migrateV1(raw, tun)
	default:
		st = &sim.State{}
		if uerr := json.Unmarshal(raw, st); uerr != nil {
			err = fmt.Errorf("%w: %v", ErrDecodeFailed, uerr)
		}
	}
	if err != nil {
		return nil, err
	}

	if !st.RNG.Valid() {
		return nil, fmt.Errorf("%w: rng state missing or malformed", ErrNotResumable)
	}
	if err := Validate(st, tun); err != nil {
		return nil, err
	}
	return st, nil
}

// Marshal renders an envelope to its on-disk bytes.
func Marshal(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("save: marshal envelope: %w", err)
	}
	return data, nil
}

// Unmarshal parses on-disk bytes into an envelope.
func Unmarshal(data []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", ErrDecodeFailed, err)
	}
	return env, nil
}

func payloadDigest(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
