package optimize

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/optimizer"
)

type OptimizeCmd struct {
	DryRun      bool `help:"Show optimization suggestions without applying them (report mode)." default:"false"`
	Window      int  `help:"Number of past days to analyze per habit." default:"${optimize_window}"`
	Interactive bool `help:"Interactively review and apply optimizations." default:"false"`
	AutoApply   bool `help:"Automatically apply all optimizations without confirmation." default:"false"`
}

func (c *OptimizeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	analyzer := optimizer.NewHabitAnalyzer(ctx.Store, svc.Clock()).WithWindow(c.Window)

	fmt.Println("Analyzing habit completion history...")
	optimizations, err := analyzer.AnalyzeAllHabits()
	if err != nil {
		return fmt.Errorf("failed to analyze habits: %w", err)
	}

	if len(optimizations) == 0 {
		fmt.Println("✅ No optimizations needed. Every habit is on track!")
		return nil
	}

	fmt.Printf("\n📊 Found %d optimization suggestion(s):\n\n", len(optimizations))
	for i, opt := range optimizations {
		displayOptimization(i+1, opt)
	}

	if c.DryRun {
		fmt.Println("💡 This was a dry run. Use --interactive to apply optimizations.")
		return nil
	}

	if c.AutoApply {
		fmt.Println("🚀 Applying all optimizations...")
		applied := 0
		for _, opt := range optimizations {
			if err := analyzer.Apply(opt); err != nil {
				fmt.Printf("  ❌ Failed to apply optimization for %s: %v\n", opt.HabitName, err)
				continue
			}
			applied++
			fmt.Printf("  ✅ Applied optimization for %s\n", opt.HabitName)
		}
		fmt.Printf("\n✨ Successfully applied %d/%d optimizations.\n", applied, len(optimizations))
		return nil
	}

	if c.Interactive {
		return runInteractive(analyzer, optimizations)
	}

	fmt.Println("💡 To apply these optimizations:")
	fmt.Println("  - Use --interactive to review and select which to apply")
	fmt.Println("  - Use --auto-apply to apply all automatically")
	return nil
}

func runInteractive(analyzer *optimizer.HabitAnalyzer, optimizations []optimizer.Optimization) error {
	fmt.Println("🎯 Interactive optimization mode")
	fmt.Println("Review each suggestion and choose whether to apply it.")

	applied, skipped := 0, 0
	for i, opt := range optimizations {
		fmt.Printf("\n[%d/%d] ", i+1, len(optimizations))
		displayOptimization(0, opt)

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Apply this optimization?").
					Options(
						huh.NewOption("Apply", "apply"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Skip remaining", "skip_all"),
					).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}

		if choice == "skip_all" {
			fmt.Println("  ⏭️  Skipping all remaining optimizations")
			skipped += len(optimizations) - i
			break
		}
		if choice == "skip" {
			fmt.Println("  ⏭️  Skipped")
			skipped++
			continue
		}
		if err := analyzer.Apply(opt); err != nil {
			fmt.Printf("  ❌ Failed to apply: %v\n", err)
			continue
		}
		fmt.Println("  ✅ Applied successfully")
		applied++
	}

	fmt.Printf("\n✨ Completed: %d applied, %d skipped\n", applied, skipped)
	return nil
}

func typeLabel(t optimizer.OptimizationType) string {
	switch t {
	case optimizer.OptimizationReduceFrequency:
		return "📉 Reduce Frequency"
	case optimizer.OptimizationIncreaseFrequency:
		return "📈 Increase Frequency"
	case optimizer.OptimizationLowerQuota:
		return "🔽 Lower Weekly Target"
	case optimizer.OptimizationRaiseQuota:
		return "🔼 Raise Weekly Target"
	case optimizer.OptimizationRemoveHabit:
		return "🗑️  Remove Habit"
	default:
		return "🔧 Optimize"
	}
}

func displayOptimization(num int, opt optimizer.Optimization) {
	prefix := ""
	if num > 0 {
		prefix = fmt.Sprintf("%d. ", num)
	}

	fmt.Printf("%s%s\n", prefix, typeLabel(opt.Type))
	fmt.Printf("   Habit: %s (%s)\n", opt.HabitName, cli.ShortID(opt.HabitID))
	fmt.Printf("   Reason: %s\n", opt.Reason)
	fmt.Printf("   Current: %s\n", opt.Current)
	if opt.Suggested != nil {
		fmt.Printf("   Suggested: %s\n", *opt.Suggested)
	}
	fmt.Println()
}
