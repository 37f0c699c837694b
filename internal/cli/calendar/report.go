package calendar

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/report"
)

type ReportCmd struct {
	Raw   bool   `help:"Print plain markdown."`
	Style string `help:"Glamour style (dark, light, notty, ...)." default:"dark" env:"ROUTINELY_REPORT_STYLE"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	weekly, err := report.Build(svc)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	md := weekly.Markdown()
	if c.Raw {
		fmt.Print(md)
		return nil
	}
	fmt.Print(report.Render(md, c.Style))
	return nil
}
