package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/save"
	"github.com/vovakirdan/rotopong/internal/sim"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a save file",
	Long: `Decode and validate a save envelope, printing its schema version,
tuning hash, integrity status and the state digest.

The state digest is the same hash an external replay harness computes after
re-simulating the run, so matching digests prove the save resumes exactly.

Examples:
  rotopong verify ~/.rotopong/saves/save.json
  rotopong verify ./save.json --tuning ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func runVerify(_ *cobra.Command, args []string) {
	tun, err := config.Load(flagTuning)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	env, err := save.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: not a save envelope: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("schema:       v%d\n", env.Schema)
	fmt.Printf("tuning hash:  %s\n", env.TuningHash)
	fmt.Printf("payload:      %d bytes (compressed)\n", len(env.Payload))

	st, err := save.Decode(env, &tun)
	if err != nil {
		switch {
		case errors.Is(err, save.ErrIntegrityMismatch):
			fmt.Println("integrity:    FAILED - digest mismatch")
		case errors.Is(err, save.ErrTuningMismatch):
			fmt.Println("integrity:    ok")
			fmt.Printf("tuning:       MISMATCH - current table is %s\n", tun.Hash())
		default:
			fmt.Printf("validation:   FAILED - %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("integrity:    ok")
	fmt.Println("validation:   ok")
	fmt.Printf("wave:         %d\n", st.WaveIndex+1)
	fmt.Printf("score:        %d\n", st.Score)
	fmt.Printf("tick:         %d\n", st.TickCount)
	fmt.Printf("state digest: %s\n", sim.StateDigest(st))
}
