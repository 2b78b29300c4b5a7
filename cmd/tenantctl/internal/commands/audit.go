package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

var ErrChainBroken = errors.New("one or more audit chains failed verification")

type AuditCmd struct {
	Verify AuditVerifyCmd `cmd:"" help:"Replay every company's audit chain against the database"`
}

type AuditVerifyCmd struct {
	DatabaseFlags `embed:""`
	Company string `help:"Only report this company"`
}

func (a *AuditVerifyCmd) Run(ctx context.Context, globals *Globals) error {
	st, err := a.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	ctx = slogx.WithContext(ctx, globals.Logger())
	reports, err := service.New(st, nil, nil).Audit.VerifyAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify audit chains: %w", err)
	}

	return printReports(os.Stdout, filterReports(reports, a.Company))
}

func filterReports(reports []ledger.Report, companyID string) []ledger.Report {
	if companyID == "" {
		return reports
	}
	var out []ledger.Report
	for _, rep := range reports {
		if rep.CompanyID == companyID {
			out = append(out, rep)
		}
	}
	return out
}

// printReports writes one line per chain and returns ErrChainBroken when any
// chain failed.
func printReports(w io.Writer, reports []ledger.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tRECORDS\tHEAD\tSTATUS")

	broken := 0
	for _, rep := range reports {
		status := "ok"
		if !rep.OK {
			broken++
			status = fmt.Sprintf("BROKEN at seq %d: %s", rep.Break.Seq, rep.Break.Reason)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", rep.CompanyID, rep.Records, rep.HeadSeq, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if broken > 0 {
		return fmt.Errorf("%w (%d of %d)", ErrChainBroken, broken, len(reports))
	}
	return nil
}
