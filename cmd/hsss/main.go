package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/izouxv/goHSSS/hadamard"
	"github.com/izouxv/goHSSS/hsss"
	"github.com/izouxv/goHSSS/keystore"
	"github.com/urfave/cli/v2"
)

var flagMatrixFile *cli.StringFlag = &cli.StringFlag{
	Name:  "matrix-file",
	Usage: "Path to a JSON file holding the Hadamard matrix as an array of rows",
}

var flagOrder *cli.IntFlag = &cli.IntFlag{
	Name:  "order",
	Usage: "Order of a Sylvester Hadamard matrix to use instead of --matrix-file (power of two)",
}

var flagSecret *cli.UintFlag = &cli.UintFlag{
	Name:  "secret",
	Usage: "Secret to split (32-bit unsigned integer)",
}

var flagPassword *cli.StringFlag = &cli.StringFlag{
	Name:  "password",
	Usage: "Protect shares with keystore envelopes under this password",
}

var flagOut *cli.StringFlag = &cli.StringFlag{
	Name:  "out",
	Value: ".",
	Usage: "Directory to write keystore envelopes to",
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hsss",
		Usage: "Hadamard threshold secret sharing",
		Commands: []*cli.Command{
			{
				Name:        "split",
				Usage:       "Split a secret into shares",
				Description: "Prints one hex-encoded share per line, or writes keystore envelopes when --password is set.",
				Flags:       []cli.Flag{flagMatrixFile, flagOrder, flagSecret, flagPassword, flagOut},
				Action:      splitAction,
			},
			{
				Name:        "reconstruct",
				Usage:       "Reconstruct a secret from shares",
				Description: "Shares are hex strings as arguments, or envelope files when --password is set.",
				Flags:       []cli.Flag{flagMatrixFile, flagOrder, flagPassword},
				Action:      reconstructAction,
			},
			{
				Name:   "validate",
				Usage:  "Flag shares that conflict with the majority",
				Flags:  []cli.Flag{flagMatrixFile, flagOrder, flagPassword},
				Action: validateAction,
			},
			{
				Name:   "info",
				Usage:  "Print scheme parameters for a matrix",
				Flags:  []cli.Flag{flagMatrixFile, flagOrder},
				Action: infoAction,
			},
		},
	}
}

func loadScheme(cCtx *cli.Context) (*hsss.Scheme, error) {
	if path := cCtx.String(flagMatrixFile.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var rows [][]int
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse matrix file: %w", err)
		}
		return hsss.NewScheme(rows)
	}
	if order := cCtx.Int(flagOrder.Name); order > 0 {
		mtx, err := hadamard.Sylvester(order)
		if err != nil {
			return nil, err
		}
		return hsss.NewScheme(mtx.Rows())
	}
	return nil, fmt.Errorf("either --%s or --%s is required", flagMatrixFile.Name, flagOrder.Name)
}

func loadParts(cCtx *cli.Context) ([]hsss.Part, error) {
	password := cCtx.String(flagPassword.Name)
	parts := make([]hsss.Part, 0, cCtx.Args().Len())
	for _, arg := range cCtx.Args().Slice() {
		var part hsss.Part
		if password != "" {
			data, err := os.ReadFile(arg)
			if err != nil {
				return nil, err
			}
			part, err = keystore.DecryptShare(data, password)
			if err != nil {
				return nil, fmt.Errorf("failed to open envelope %s: %w", arg, err)
			}
		} else {
			data, err := hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("share %q is not valid hex: %w", arg, err)
			}
			part, err = hsss.DecodePart(data)
			if err != nil {
				return nil, err
			}
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func splitAction(cCtx *cli.Context) error {
	scheme, err := loadScheme(cCtx)
	if err != nil {
		return err
	}
	secret := cCtx.Uint(flagSecret.Name)
	if uint64(secret) > math.MaxUint32 {
		return fmt.Errorf("secret %d does not fit in %d bits", secret, hsss.SecretBits)
	}
	parts, err := scheme.Share(uint32(secret))
	if err != nil {
		return err
	}

	if password := cCtx.String(flagPassword.Name); password != "" {
		outDir := cCtx.String(flagOut.Name)
		for _, part := range parts {
			envelope, err := keystore.EncryptShare(part, password)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, fmt.Sprintf("part-%d.json", part.Number))
			if err := os.WriteFile(path, envelope, 0600); err != nil {
				return err
			}
			fmt.Printf("party %d: %s\n", part.Number, path)
		}
		return nil
	}

	for _, part := range parts {
		fingerprint, err := part.Fingerprint()
		if err != nil {
			return err
		}
		fmt.Printf("party %d: %s (fingerprint %s)\n",
			part.Number, hex.EncodeToString(part.Encode()), hex.EncodeToString(fingerprint[:8]))
	}
	return nil
}

func reconstructAction(cCtx *cli.Context) error {
	scheme, err := loadScheme(cCtx)
	if err != nil {
		return err
	}
	parts, err := loadParts(cCtx)
	if err != nil {
		return err
	}
	secret, err := scheme.Reconstruct(parts)
	if err != nil {
		return err
	}
	fmt.Println(secret)
	return nil
}

func validateAction(cCtx *cli.Context) error {
	scheme, err := loadScheme(cCtx)
	if err != nil {
		return err
	}
	parts, err := loadParts(cCtx)
	if err != nil {
		return err
	}
	suspicious, err := scheme.Validate(parts)
	if err != nil {
		return err
	}
	if len(suspicious) == 0 {
		fmt.Println("no inconsistencies detected")
		return nil
	}
	for _, ind := range suspicious {
		fmt.Printf("party %d is suspicious\n", ind)
	}
	return nil
}

func infoAction(cCtx *cli.Context) error {
	scheme, err := loadScheme(cCtx)
	if err != nil {
		return err
	}
	fmt.Printf("parties:   %d\n", scheme.Parties())
	fmt.Printf("threshold: %d\n", scheme.Threshold())
	return nil
}
