package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/quadra/internal/domain"
)

// Console implementa ports.Reporter.
type Console struct {
	out    io.Writer
	detail bool
}

// NewConsole crea un reporter que escribe a stdout.
// Con detail imprime además el desglose por instrumento.
func NewConsole(detail bool) *Console {
	return &Console{out: os.Stdout, detail: detail}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, detail bool) *Console {
	return &Console{out: w, detail: detail}
}

// ReportSplits imprime la tabla de reparto y, si corresponde, el desglose.
func (c *Console) ReportSplits(_ context.Context, _ string, splits []domain.SplitResult) error {
	if len(splits) == 0 {
		fmt.Fprintln(c.out, "no strategies to report")
		return nil
	}

	first := splits[0]
	fmt.Fprintf(c.out, "\nInvestment %s over %d months\n", money(first.Amount), first.Months)

	table := tablewriter.NewWriter(c.out)
	table.Header("Strategy", "Investor", "Inv %", "Quadra", "Quadra %", "Contractor", "Contr %")
	for _, s := range splits {
		table.Append(
			s.Strategy,
			money(s.Investor.Amount), percent(s.Investor.Percent),
			money(s.Platform.Amount), percent(s.Platform.Percent),
			money(s.Contractor.Amount), percent(s.Contractor.Percent),
		)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("notify.ReportSplits: render: %w", err)
	}

	if c.detail {
		for _, s := range splits {
			c.printBreakdown(s)
		}
	}
	return nil
}

// printBreakdown imprime el cálculo paso a paso de una estrategia.
func (c *Console) printBreakdown(s domain.SplitResult) {
	fmt.Fprintf(c.out, "\n--- %s: step by step ---\n", s.Strategy)
	for _, r := range []domain.InstrumentResult{s.Gold, s.Flip, s.Algo} {
		if r.Allocation <= 0 {
			fmt.Fprintf(c.out, "  %-5s not allocated\n", r.Instrument)
			continue
		}
		fmt.Fprintf(c.out, "  %-5s alloc %s  gross %s  contractor %s  quadra %s  net %s\n",
			r.Instrument, money(r.Allocation), money(r.Gross),
			money(r.ContractorFee), money(r.PlatformFee), money(r.Net))
	}
	fmt.Fprintf(c.out, "  mgmt  quadra %s (whole amount)  contractor %s (algo slice)\n",
		money(s.PlatformManagementFee), money(s.ContractorManagementFee))
	fmt.Fprintf(c.out, "  total gross %s = investor + quadra + contractor\n", money(s.TotalGross))
}

// ReportGoal imprime la estrategia encontrada o el aviso de objetivo inalcanzable.
func (c *Console) ReportGoal(_ context.Context, _ string, res domain.GoalResult) error {
	if !res.Found {
		fmt.Fprintf(c.out, "✗ Target %s cannot be reached even with maximum parameters\n",
			percent(res.Target*100))
		return nil
	}

	fmt.Fprintf(c.out, "✓ Matching strategy: %s\n", res.Strategy)
	fmt.Fprintf(c.out, "  Gold return:  %s/month\n", percent(res.Returns.GoldMonthly*100))
	fmt.Fprintf(c.out, "  Flip return:  %s/6 months\n", percent(res.Returns.FlipPerPeriod*100))
	fmt.Fprintf(c.out, "  Algo return:  %s/year\n", percent(res.AlgoAnnual*100))
	fmt.Fprintf(c.out, "  Investor:     %s (%s)\n",
		money(res.Split.Investor.Amount), percent(res.Split.Investor.Percent))
	fmt.Fprintf(c.out, "  Quadra:       %s\n", money(res.Split.Platform.Amount))
	fmt.Fprintf(c.out, "  Contractor:   %s\n", money(res.Split.Contractor.Amount))

	if c.detail {
		c.printBreakdown(res.Split)
	}
	return nil
}

// ReportWarning imprime un aviso que bloqueó el cálculo.
func (c *Console) ReportWarning(_ context.Context, _ string, msg string) error {
	fmt.Fprintf(c.out, "⚠ %s\n", msg)
	return nil
}

// money formatea un importe como $1,234.56.
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
