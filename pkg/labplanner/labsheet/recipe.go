package labsheet

import (
	"github.com/shopspring/decimal"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func ingredient(reagent model.Reagent, volume float64) model.Ingredient {
	return model.Ingredient{Reagent: reagent, Volume: decimal.NewFromFloat(volume)}
}

// newRecipe returns the recipe of reactions copies of reaction. Sheets with
// more than one reaction get a mastermix of the stock reagents, with one
// extra reaction of slack.
func newRecipe(reactions int, reaction ...model.Ingredient) *model.Recipe {
	recipe := &model.Recipe{Reaction: reaction}
	if reactions <= 1 {
		return recipe
	}

	factor := decimal.NewFromInt(int64(reactions + 1))

	for _, ing := range reaction {
		if ing.Reagent.Abstract() {
			continue
		}

		recipe.Mastermix = append(recipe.Mastermix, model.Ingredient{
			Reagent: ing.Reagent,
			Volume:  ing.Volume.Mul(factor),
		})
	}

	return recipe
}

func pcrRecipe(reactions int) *model.Recipe {
	return newRecipe(reactions,
		ingredient(model.DdH2O, 32),
		ingredient(model.PrimeSTARDNTPMixture2p5mM, 4),
		ingredient(model.ReagentPrimer1, 1),
		ingredient(model.ReagentPrimer2, 1),
		ingredient(model.ReagentTemplate, 1),
		ingredient(model.PrimeSTARGXLBuffer5x, 10),
		ingredient(model.PrimeSTARGXLPolymerase, 1),
	)
}

func digestRecipe(reactions int, enzymes []model.Reagent) *model.Recipe {
	reaction := []model.Ingredient{
		ingredient(model.DdH2O, 33.5),
		ingredient(model.NEBBuffer2_10x, 5),
		ingredient(model.ReagentDNA, 10),
	}
	for _, enzyme := range enzymes {
		reaction = append(reaction, ingredient(enzyme, 1))
	}

	return newRecipe(reactions, reaction...)
}

func ligateRecipe(reactions int) *model.Recipe {
	return newRecipe(reactions,
		ingredient(model.DdH2O, 7.5),
		ingredient(model.T4DNALigaseBuffer10x, 1),
		ingredient(model.ReagentDNA, 1),
		ingredient(model.T4DNALigase, 0.5),
	)
}

func goldenGateRecipe(reactions int, enzyme model.Reagent) *model.Recipe {
	return newRecipe(reactions,
		ingredient(model.DdH2O, 6),
		ingredient(model.T4DNALigaseBuffer10x, 1),
		ingredient(model.ReagentDNA, 2),
		ingredient(model.T4DNALigase, 0.5),
		ingredient(enzyme, 1),
	)
}

func gibsonRecipe(reactions int) *model.Recipe {
	return newRecipe(reactions,
		ingredient(model.DdH2O, 6),
		ingredient(model.GibsonAssemblyMasterMix, 10),
		ingredient(model.ReagentDNA, 4),
	)
}
