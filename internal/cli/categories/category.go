package categories

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
)

type CategoryCmd struct {
	List   CategoryListCmd   `cmd:"" help:"List categories." default:"1"`
	Add    CategoryAddCmd    `cmd:"" help:"Add a custom category."`
	Remove CategoryRemoveCmd `cmd:"" help:"Remove a custom category. Items keep their label."`
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	registry, err := svc.Registry()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	summary, err := svc.Summary()
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, cc := range summary.Categories {
		counts[cc.Name] = cc.Count
	}

	fmt.Printf("%-20s %-8s %s\n", "Category", "Items", "Kind")
	fmt.Println(strings.Repeat("-", 40))
	for _, name := range registry.All() {
		kind := "custom"
		if slices.Contains(models.DefaultCategories, name) {
			kind = "default"
		}
		fmt.Printf("%-20s %-8d %s\n", name, counts[name], kind)
	}
	return nil
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.AddCategory(c.Name); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	fmt.Printf("✓ Category added: %s\n", strings.TrimSpace(c.Name))
	return nil
}

type CategoryRemoveCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryRemoveCmd) Run(ctx *cli.Context) error {
	if slices.Contains(models.DefaultCategories, c.Name) {
		return fmt.Errorf("%q is a default category and cannot be removed", c.Name)
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.RemoveCategory(c.Name); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}

	fmt.Printf("✓ Category removed: %s\n", c.Name)
	return nil
}
