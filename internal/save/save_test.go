package save

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
	"github.com/vovakirdan/rotopong/internal/sim"
)

// playedState produces a mid-run state by actually simulating, so round-trip
// tests cover a reachable state rather than a hand-built one.
func playedState(t *testing.T, tun *config.Tuning) *sim.State {
	t.Helper()
	st := sim.NewState(7, tun.Paddle.ArcWidth, tun.Ball.Radius, tun.Gameplay.Lives)
	r := sim.NewRunner(tun, st)
	r.Push(sim.Command{Kind: sim.CmdLaunch})
	for i := 0; i < 240; i++ {
		r.Step()
	}
	return st
}

func testStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), log.New(io.Discard))
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)

	env, err := Encode(st, &tun, 100, 200)
	require.NoError(t, err)
	loaded, err := Decode(env, &tun)
	require.NoError(t, err)

	assert.Equal(t, st, loaded)
}

func TestEnvelopeFields(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)

	env, err := Encode(st, &tun, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchema, env.Schema)
	assert.Equal(t, tun.Hash(), env.TuningHash)
	assert.Equal(t, int64(100), env.CreatedAt)
	assert.Equal(t, int64(200), env.SavedAt)
	assert.NotEmpty(t, env.Digest)
}

func TestByteFlipDetected(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	env, err := Encode(st, &tun, 0, 0)
	require.NoError(t, err)

	for _, pos := range []int{0, len(env.Payload) / 2, len(env.Payload) - 1} {
		flipped := *env
		flipped.Payload = append([]byte(nil), env.Payload...)
		flipped.Payload[pos] ^= 0xFF
		_, err := Decode(&flipped, &tun)
		assert.ErrorIs(t, err, ErrIntegrityMismatch, "flip at %d", pos)
	}
}

func TestUnsupportedSchema(t *testing.T) {
	tun := config.DefaultTuning()
	env, err := Encode(playedState(t, &tun), &tun, 0, 0)
	require.NoError(t, err)
	env.Schema = 99
	_, err = Decode(env, &tun)
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestTuningMismatch(t *testing.T) {
	tun := config.DefaultTuning()
	env, err := Encode(playedState(t, &tun), &tun, 0, 0)
	require.NoError(t, err)

	changed := config.DefaultTuning()
	changed.Ball.StartSpeed = 999
	_, err = Decode(env, &changed)
	assert.ErrorIs(t, err, ErrTuningMismatch)
}

func TestLivesClamped(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	st.Lives = 255

	env, err := Encode(st, &tun, 0, 0)
	require.NoError(t, err)
	loaded, err := Decode(env, &tun)
	require.NoError(t, err)
	assert.Equal(t, tun.Limits.MaxLives, loaded.Lives)
}

func TestNaNRejected(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	require.NotEmpty(t, st.Balls)
	st.Balls[0].Pos.X = nan32()
	err := Validate(st, &tun)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	require.NotEmpty(t, st.Balls)
	st.Balls[0].Pos.X = nan32()

	_, err := Encode(st, &tun, 0, 0)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestZeroBallRadiusRestored(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	require.NotEmpty(t, st.Balls)
	st.Balls[0].Radius = 0

	require.NoError(t, Validate(st, &tun))
	assert.Equal(t, tun.Ball.Radius, st.Balls[0].Radius)
}

func TestDuplicateIDsRejected(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	require.NotEmpty(t, st.Blocks)
	st.Blocks[0].ID = st.Balls[0].ID
	err := Validate(st, &tun)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestDanglingPortalBecomesGlass(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	id := st.NextEntityID()
	st.Blocks = append(st.Blocks, sim.Block{
		ID:     id,
		Kind:   sim.KindPortal,
		HP:     1,
		PairID: 99999,
		Arc:    sim.NewArc(250, tun.Blocks.Thickness, 0, 0.3),
	})
	st.NormalizeOrder()

	env, err := Encode(st, &tun, 0, 0)
	require.NoError(t, err)
	loaded, err := Decode(env, &tun)
	require.NoError(t, err)

	idx := loaded.FindBlock(id)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, sim.KindGlass, loaded.Blocks[idx].Kind)
}

func TestExcessEntitiesDroppedHighestFirst(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	for len(st.Pickups) < tun.Limits.MaxPickups+10 {
		st.Pickups = append(st.Pickups, sim.Pickup{
			ID: st.NextEntityID(), Kind: sim.PickupSlow, TTLTicks: 100,
		})
	}
	st.NormalizeOrder()
	lowest := st.Pickups[0].ID

	require.NoError(t, Validate(st, &tun))
	assert.Len(t, st.Pickups, tun.Limits.MaxPickups)
	assert.Equal(t, lowest, st.Pickups[0].ID, "low ids survive the trim")
}

func TestMigrationV1(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	st.Combo = 5

	env, err := Encode(st, &tun, 0, 0)
	require.NoError(t, err)
	env.Schema = SchemaV1
	env.TuningHash = "stale-hash-from-an-older-build"

	loaded, err := Decode(env, &tun)
	require.NoError(t, err, "migrating load tolerates a changed tuning hash")
	assert.Equal(t, uint32(0), loaded.Combo, "v1 had no combo counter")
	assert.Equal(t, st.Score, loaded.Score)
	assert.Equal(t, st.RNG, loaded.RNG, "rng state survives migration untouched")
}

func TestMigrationWithoutRNGNotResumable(t *testing.T) {
	tun := config.DefaultTuning()
	st := playedState(t, &tun)
	st.RNG = core.RNGState{}

	env, err := Encode(st, &tun, 0, 0)
	require.NoError(t, err)
	env.Schema = SchemaV1
	_, err = Decode(env, &tun)
	assert.ErrorIs(t, err, ErrNotResumable)
}

func TestStoreSaveLoad(t *testing.T) {
	tun := config.DefaultTuning()
	s := testStore(t)
	st := playedState(t, &tun)

	require.NoError(t, s.Save(st, &tun))
	loaded, err := s.Load(&tun)
	require.NoError(t, err)
	assert.Equal(t, st, loaded)

	m, err := s.Meta()
	require.NoError(t, err)
	assert.Equal(t, st.WaveIndex, m.Wave)
	assert.Equal(t, st.Score, m.Score)
}

func TestStoreLoadMissing(t *testing.T) {
	s := testStore(t)
	tun := config.DefaultTuning()
	_, err := s.Load(&tun)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreBackupRotation(t *testing.T) {
	tun := config.DefaultTuning()
	s := testStore(t)

	first := playedState(t, &tun)
	require.NoError(t, s.Save(first, &tun))

	second := playedState(t, &tun)
	second.Score += 1000
	require.NoError(t, s.Save(second, &tun))

	// Corrupt the primary; the backup (first checkpoint) must answer.
	primary := filepath.Join(s.dir, primaryName)
	require.NoError(t, os.WriteFile(primary, []byte("not json at all"), 0o644))

	loaded, err := s.Load(&tun)
	require.NoError(t, err)
	assert.Equal(t, first.Score, loaded.Score)
}

func TestStoreClear(t *testing.T) {
	tun := config.DefaultTuning()
	s := testStore(t)
	require.NoError(t, s.Save(playedState(t, &tun), &tun))
	s.Clear()
	_, err := s.Load(&tun)
	assert.ErrorIs(t, err, ErrNotFound)
}

func nan32() float32 {
	z := float32(0)
	return z / z
}
