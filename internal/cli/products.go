package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Shamu9311/sport-front/internal/gate"
)

func (a *App) ListCategories(ctx context.Context) {
	if !a.enter(ctx, gate.RouteProducts) {
		return
	}

	categories, err := a.api.ProductCategories(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load categories:", err)
		return
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "#%d  %s - %s\n", c.CategoryID, c.Name, c.Description)
	}
}

func (a *App) ListProducts(ctx context.Context, categoryID int64) {
	if !a.enter(ctx, gate.RouteProducts) {
		return
	}

	products, err := a.api.ProductsByCategory(ctx, categoryID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load products:", err)
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products in this category")
		return
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "#%d  %s - %s\n", p.ProductID, p.Name, p.Description)
	}
}

func (a *App) ShowProduct(ctx context.Context, productID int64) {
	if !a.enter(ctx, gate.RouteProducts) {
		return
	}

	detail, err := a.api.ProductDetail(ctx, productID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the product:", err)
		return
	}

	p := detail.Product
	fmt.Fprintf(a.out, "%s\n%s\n", p.Name, p.Description)
	if p.UsageRecommendation != "" {
		fmt.Fprintln(a.out, "Usage:", p.UsageRecommendation)
	}

	n := detail.Nutrition
	if n.ServingSize != "" {
		fmt.Fprintf(a.out, "Per %s: %.0f kcal, %.1fg protein, %.1fg carbs (%.1fg sugars)\n",
			n.ServingSize, n.EnergyKcal, n.ProteinG, n.CarbsG, n.SugarsG)
		fmt.Fprintf(a.out, "  sodium %.0fmg, potassium %.0fmg, magnesium %.0fmg, caffeine %.0fmg\n",
			n.SodiumMg, n.PotassiumMg, n.MagnesiumMg, n.CaffeineMg)
	}

	if len(detail.Flavors) > 0 {
		fmt.Fprint(a.out, "Flavors:")
		for _, f := range detail.Flavors {
			fmt.Fprintf(a.out, " %s", f.Name)
		}
		fmt.Fprintln(a.out)
	}
}

func (a *App) Consume(ctx context.Context, args []string) {
	if !a.enter(ctx, gate.RouteProducts) {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: consume <productId> <quantity>")
		return
	}
	productID, err1 := strconv.ParseInt(args[0], 10, 64)
	quantity, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || quantity <= 0 {
		fmt.Fprintln(a.out, "Usage: consume <productId> <quantity>")
		return
	}

	user := a.currentUser()
	if err := a.api.AddConsumption(ctx, user.ID, productID, quantity); err != nil {
		fmt.Fprintln(a.out, "Could not record consumption:", err)
		return
	}
	fmt.Fprintln(a.out, "Consumption recorded")
}
