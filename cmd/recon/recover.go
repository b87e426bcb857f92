package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	jsoniter "github.com/json-iterator/go"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/polyrecon/recon"
	"github.com/polyrecon/recon/testcase"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type recoverParams struct {
	input    string
	pick     []string
	strategy string
	workers  int
	jsonOut  bool
	verbose  bool
}

func newRecoverCommand() *cobra.Command {
	p := &recoverParams{}

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the secret from an encoded test case",
		Long: `Recover reads a JSON test case, decodes its shares, and reconstructs the
shared polynomial's constant term. With --pick, exactly the shares with the
given x-coordinates are used and any inconsistency among them is fatal.
Without --pick, every threshold-sized subset of the shares is evaluated and
the value supported by the most subsets wins, so corrupted shares are voted
out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&p.input, "input", "i", "", "test case file ('-' or empty for stdin)")
	f.StringSliceVar(&p.pick, "pick", nil, "reconstruct from exactly these share keys")
	f.StringVar(&p.strategy, "strategy", "lagrange", "interpolation strategy: lagrange or gauss")
	f.IntVar(&p.workers, "workers", 1, "parallel subset evaluations in voting mode")
	f.BoolVar(&p.jsonOut, "json", false, "emit the result as JSON")
	f.BoolVarP(&p.verbose, "verbose", "v", false, "log every discarded subset")

	return cmd
}

func (p *recoverParams) run(cmd *cobra.Command) error {
	tc, err := p.readTestCase()
	if err != nil {
		return err
	}

	interp, err := p.interpolator()
	if err != nil {
		return err
	}

	logger := hclog.NewNullLogger()
	if p.verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:  "recon",
			Level: hclog.Debug,
		})
	}

	r := &recon.Recoverer{
		Interp:  interp,
		Logger:  logger,
		Workers: p.workers,
	}

	var result *recoverResult

	if len(p.pick) > 0 {
		keys, err := parseKeys(p.pick)
		if err != nil {
			return err
		}

		secret, err := r.RecoverPick(tc.Points, tc.K, keys)
		if err != nil {
			return err
		}

		result = &recoverResult{Secret: secret.String(), Mode: "direct"}
	} else {
		res, err := r.Recover(tc.Points, tc.K)
		if err != nil {
			return err
		}

		result = newRecoverResult(res, tc)
	}

	return p.write(cmd.OutOrStdout(), result)
}

func (p *recoverParams) readTestCase() (*testcase.TestCase, error) {
	if p.input == "" || p.input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read test case: %w", err)
		}

		return testcase.Parse(data)
	}

	return testcase.ParseFile(p.input)
}

func (p *recoverParams) interpolator() (recon.Interpolator, error) {
	switch p.strategy {
	case "lagrange":
		return recon.Lagrange{}, nil
	case "gauss":
		return recon.Gauss{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want lagrange or gauss)", p.strategy)
	}
}

func (p *recoverParams) write(w io.Writer, result *recoverResult) error {
	if p.jsonOut {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(out))

		return nil
	}

	fmt.Fprintln(w, result.output())

	return nil
}

func parseKeys(raw []string) ([]*big.Int, error) {
	keys := make([]*big.Int, len(raw))
	for i, s := range raw {
		k, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
		if !ok {
			return nil, fmt.Errorf("share key %q is not a decimal integer", s)
		}
		keys[i] = k
	}

	return keys, nil
}

type candidateResult struct {
	Value   string `json:"value"`
	Votes   int    `json:"votes"`
	Witness []int  `json:"witness"`
}

type recoverResult struct {
	Secret     string            `json:"secret"`
	Mode       string            `json:"mode"`
	Shares     int               `json:"shares,omitempty"`
	Threshold  int               `json:"threshold,omitempty"`
	Votes      int               `json:"votes,omitempty"`
	Witness    []int             `json:"witness,omitempty"`
	Candidates []candidateResult `json:"candidates,omitempty"`
}

func newRecoverResult(res *recon.Result, tc *testcase.TestCase) *recoverResult {
	r := &recoverResult{
		Secret:    res.Secret.String(),
		Mode:      "voting",
		Shares:    len(tc.Points),
		Threshold: tc.K,
		Votes:     res.Votes,
		Witness:   res.Witness,
	}
	if len(tc.Points) == tc.K {
		r.Mode = "direct"
	}

	for _, c := range res.Candidates {
		r.Candidates = append(r.Candidates, candidateResult{
			Value:   c.Value.String(),
			Votes:   c.Votes,
			Witness: c.Witness,
		})
	}

	return r
}

func (r *recoverResult) output() string {
	var sb strings.Builder

	sb.WriteString(columnize.SimpleFormat([]string{
		"Secret | " + r.Secret,
		"Mode | " + r.Mode,
	}))

	if len(r.Candidates) > 0 {
		rows := []string{"Value | Votes | Witness"}
		for _, c := range r.Candidates {
			rows = append(rows, fmt.Sprintf("%s | %d | %v", c.Value, c.Votes, c.Witness))
		}

		sb.WriteString("\n\n")
		sb.WriteString(columnize.SimpleFormat(rows))
	}

	return sb.String()
}
