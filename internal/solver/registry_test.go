package solver

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitdittowit/autoduo/internal/challenge"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry() *Registry {
	return NewRegistry(testOptions(), discardLogger())
}

func solverNames(r *Registry) []string {
	var names []string
	for _, s := range r.Solvers() {
		names = append(names, s.Name())
	}
	return names
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func requireBefore(t *testing.T, names []string, first, second string) {
	t.Helper()
	fi, si := indexOf(names, first), indexOf(names, second)
	require.GreaterOrEqual(t, fi, 0, "%s not registered", first)
	require.GreaterOrEqual(t, si, 0, "%s not registered", second)
	assert.Less(t, fi, si, "%s must come before %s", first, second)
}

func TestRegistryOrder(t *testing.T) {
	names := solverNames(testRegistry())

	require.Equal(t, "pairs-matching", names[0])
	require.Equal(t, "type-answer", names[len(names)-1])

	requireBefore(t, names, "select-all", "match-value-choice")
	requireBefore(t, names, "round-to-nearest", "match-value-choice")
	requireBefore(t, names, "round-to-nearest", "type-answer")
	requireBefore(t, names, "line-graph", "point-plot")
	requireBefore(t, names, "compare-fractions", "operator-pick")
	requireBefore(t, names, "grid-fraction", "block-count")
	requireBefore(t, names, "lcm-visual", "lcm-text")
	requireBefore(t, names, "gcf-visual", "gcf-text")
	requireBefore(t, names, "equivalent-fraction", "match-value-choice")
}

func TestRegistryFind(t *testing.T) {
	pairs, _ := withChoices(
		staticContext("tap the matching pairs.", ""),
		"round 41 to the nearest 10", "40", "round 17 to the nearest 5", "15")

	rounding, _ := withChoices(staticContext("round 41 to the nearest 10.", "41"), "48", "40", "45")

	compare, _ := withChoices(
		staticContext("compare the fractions.", `\frac{1}{2}\duoblank{1}\frac{1}{3}`),
		"<", "=", ">")

	operator, _ := withChoices(
		staticContext("pick the operator.", `3\duoblank{}4=12`),
		"+", "-", "×")

	typed, _ := withInput(staticContext("fill in the blank.", `3+\duoblank{1}=7`))

	line := withWidget(
		staticContext("draw the line.", "y = 2x + 1"),
		&challenge.StaticWidget{Doc: `<div class="coordinate-plane plot-line"></div>`})

	point := withWidget(
		staticContext("plot the point.", "(3, 4)"),
		&challenge.StaticWidget{Doc: `<div class="coordinate-plane"></div>`})

	tests := []struct {
		name string
		ctx  *challenge.Context
		want string
	}{
		{"pairs over choice solvers", pairs, "pairs-matching"},
		{"rounding over match-value", rounding, "round-to-nearest"},
		{"compare over operator", compare, "compare-fractions"},
		{"operator choices", operator, "operator-pick"},
		{"text entry fallback", typed, "type-answer"},
		{"line signature over point", line, "line-graph"},
		{"plane without line plots a point", point, "point-plot"},
	}

	r := testRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := r.Find(tt.ctx)
			require.NotNil(t, s, "no solver matched")
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestRegistrySolve(t *testing.T) {
	c, in := withInput(staticContext("round 41 to the nearest 10.", "41"))

	res, ok := testRegistry().Solve(c)
	require.True(t, ok)
	require.True(t, res.Success)
	assert.Equal(t, "40", res.Answer)
	assert.Equal(t, []string{"40"}, in.Typed())
}

func TestRegistrySolve_NoMatch(t *testing.T) {
	res, ok := testRegistry().Solve(staticContext("", ""))
	assert.False(t, ok)
	assert.False(t, res.Success)
}

type boomSolver struct{}

func (boomSolver) Name() string                              { return "boom" }
func (boomSolver) CanSolve(*challenge.Context) bool          { return true }
func (boomSolver) Solve(*challenge.Context) challenge.Result { panic("kaboom") }

func TestRegistrySolve_ContainsPanic(t *testing.T) {
	r := &Registry{solvers: []Solver{boomSolver{}}, logger: discardLogger()}

	var res challenge.Result
	var ok bool
	require.NotPanics(t, func() { res, ok = r.Solve(staticContext("", "")) })
	assert.False(t, ok)
	assert.False(t, res.Success)
}
