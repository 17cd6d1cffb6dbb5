package codeprint_test

import (
	"testing"

	"github.com/bjaus/codeprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variable(name string, comments ...string) codeprint.Stmt {
	return &codeprint.Expression{Meta: codeprint.LineComments(comments...), Expr: &codeprint.Variable{Name: name}}
}

func extended(t *testing.T, stmts ...codeprint.Stmt) string {
	t.Helper()
	out, err := codeprint.NewPrinter(codeprint.Extended{}, nil).PrettyPrint(stmts)
	require.NoError(t, err)
	return out
}

const expectedStmtsSplit = `class tc
{
    function tm1(): void
    {
        $qwe;
        $asd;
        zxc();
    }

    function tm2(): void
    {
        // qwe
        $qwe;
        // asd
        $asd;
        // z
        // x
        // c
        zxc();
    }

    function &methodByRef()
    {
    }
}
`

func TestExtendedStmtsSplit(t *testing.T) {
	t.Parallel()
	class := &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{
		&codeprint.ClassMethod{Name: "tm1", ReturnType: void(), Body: codeprint.Body(
			variable("qwe"),
			variable("asd"),
			call("zxc"),
		)},
		&codeprint.ClassMethod{Name: "tm2", ReturnType: void(), Body: codeprint.Body(
			variable("qwe", "qwe"),
			variable("asd", "asd"),
			&codeprint.Nop{Meta: codeprint.LineComments("z")},
			&codeprint.Nop{Meta: codeprint.LineComments("x", "c")},
			call("zxc"),
		)},
		&codeprint.ClassMethod{Name: "methodByRef", ByRef: true, Body: codeprint.Body()},
	}}
	assert.Equal(t, expectedStmtsSplit, extended(t, class))
}

func TestExtendedClassMembers(t *testing.T) {
	t.Parallel()
	members := map[string]codeprint.Stmt{
		"trait use": &codeprint.TraitUse{Traits: []string{"TraitName"}},
		"const": &codeprint.ClassConst{Consts: []*codeprint.Const{
			{Name: "CONST_NAME", Value: &codeprint.String{Value: "val"}},
		}},
		"property": &codeprint.Property{Flags: codeprint.ModPublic, Props: []*codeprint.PropertyItem{{Name: "prop"}}},
		"method":   &codeprint.ClassMethod{Name: "tMethod", Body: codeprint.Body()},
	}
	for name, stmt := range members {
		stmt := stmt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := extended(t, &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{stmt, stmt}})
			assert.Contains(t, out, "\n\n")
		})
	}
}

func TestExtendedPlainMembers(t *testing.T) {
	t.Parallel()
	members := map[string]codeprint.Stmt{
		"expression": variable("asd"),
		"nop":        &codeprint.Nop{Meta: codeprint.LineComments("z")},
		"function":   &codeprint.Function{Name: "fun"},
		"for":        &codeprint.For{},
	}
	for name, stmt := range members {
		stmt := stmt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := extended(t, &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{stmt, stmt}})
			assert.NotContains(t, out, "\n\n")
		})
	}
}

func TestExtendedTraitUseTwice(t *testing.T) {
	t.Parallel()
	use := &codeprint.TraitUse{Traits: []string{"A", "B"}}
	out := extended(t, &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{use, use}})
	assert.Equal(t, "class tc\n{\n    use A, B;\n\n    use A, B;\n}\n", out)
}

func TestExtendedPlainStatementsCompact(t *testing.T) {
	t.Parallel()
	out := extended(t, &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{variable("a"), variable("b")}})
	assert.Equal(t, "class tc\n{\n    $a;\n    $b;\n}\n", out)
}

func TestSeparated(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		members []codeprint.Stmt
		want    bool
	}{
		"empty":        {members: nil, want: false},
		"plain only":   {members: []codeprint.Stmt{variable("a"), &codeprint.Return{}}, want: false},
		"nop only":     {members: []codeprint.Stmt{&codeprint.Nop{}}, want: false},
		"nested class": {members: []codeprint.Stmt{&codeprint.Class{Name: "x"}}, want: false},
		"one method": {
			members: []codeprint.Stmt{variable("a"), &codeprint.ClassMethod{Name: "m"}},
			want:    true,
		},
		"trait use": {members: []codeprint.Stmt{&codeprint.TraitUse{}}, want: true},
		"const":     {members: []codeprint.Stmt{&codeprint.ClassConst{}}, want: true},
		"property":  {members: []codeprint.Stmt{&codeprint.Property{}}, want: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, codeprint.Separated(tt.members))
		})
	}
}

func TestSplitStmtsComments(t *testing.T) {
	t.Parallel()
	class := &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{
		&codeprint.Property{
			Meta:  codeprint.DocComment("@var int"),
			Flags: codeprint.ModPrivate,
			Type:  codeprint.ParseType("int"),
			Props: []*codeprint.PropertyItem{{Name: "id", Default: &codeprint.Int{Value: 1}}},
		},
		&codeprint.Nop{Meta: codeprint.LineComments("section")},
		&codeprint.ClassConst{
			Meta:   codeprint.LineComments("one", "two"),
			Flags:  codeprint.ModPublic,
			Consts: []*codeprint.Const{{Name: "A", Value: &codeprint.ConstFetch{Name: "null"}}},
		},
		&codeprint.Nop{},
	}}
	want := "class tc\n{\n" +
		"    /** @var int */\n    private int $id = 1;\n" +
		"\n    // section\n" +
		"\n    // one\n    // two\n    public const A = null;\n" +
		"}\n"
	assert.Equal(t, want, extended(t, class))
}

func TestSplitStmtsError(t *testing.T) {
	t.Parallel()
	p := codeprint.NewPrinter(codeprint.Extended{}, nil)
	_, err := codeprint.SplitStmts(p, []codeprint.Stmt{&codeprint.TraitUse{}})
	assert.ErrorIs(t, err, codeprint.ErrMalformedTree)
	_, err = codeprint.SplitStmts(p, []codeprint.Stmt{nil})
	assert.ErrorIs(t, err, codeprint.ErrMalformedTree)
}

func TestDepthRestoredAfterError(t *testing.T) {
	t.Parallel()
	p := codeprint.NewPrinter(codeprint.Extended{}, nil)
	class := &codeprint.Class{Name: "tc", Stmts: []codeprint.Stmt{
		&codeprint.ClassMethod{Name: "m", Body: codeprint.Body(
			&codeprint.For{Stmts: []codeprint.Stmt{&codeprint.Expression{}}},
		)},
	}}
	_, err := p.Render(class)
	require.ErrorIs(t, err, codeprint.ErrMalformedTree)
	assert.Equal(t, 0, p.Depth())
}

func TestNestedRestoresDepthOnPanic(t *testing.T) {
	t.Parallel()
	p := codeprint.NewPrinter(nil, nil)
	assert.Panics(t, func() {
		_ = p.Nested(func() error {
			_ = p.Nested(func() error { panic("boom") })
			return nil
		})
	})
	assert.Equal(t, 0, p.Depth())
}
