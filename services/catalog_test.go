package services

import "testing"

func TestCatalogFilterExpression(t *testing.T) {
	tests := []struct {
		name       string
		filter     CatalogFilter
		wantExpr   string
		wantParams map[string]any
	}{
		{
			name:       "empty",
			filter:     CatalogFilter{},
			wantExpr:   "active = true",
			wantParams: map[string]any{},
		},
		{
			name:       "single_category",
			filter:     CatalogFilter{CategoryIDs: []string{"Terminals"}},
			wantExpr:   "active = true && (category = {:cat0})",
			wantParams: map[string]any{"cat0": "Terminals"},
		},
		{
			name:     "categories_and_solutions",
			filter:   CatalogFilter{CategoryIDs: []string{"Terminals", "Acquiring"}, SolutionIDs: []string{"pos_system"}},
			wantExpr: "active = true && (category = {:cat0} || category = {:cat1}) && (solutions ~ {:sol0})",
			wantParams: map[string]any{
				"cat0": "Terminals", "cat1": "Acquiring", "sol0": "pos_system",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, params := tt.filter.FilterExpression()
			if expr != tt.wantExpr {
				t.Errorf("expression = %q, want %q", expr, tt.wantExpr)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if params[k] != v {
					t.Errorf("params[%q] = %v, want %v", k, params[k], v)
				}
			}
		})
	}
}
