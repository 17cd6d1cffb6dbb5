package codeprint_test

import (
	"strings"
	"testing"

	"github.com/bjaus/codeprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userYAML = `
class:
  name: User
  modifiers: [final]
  implements: [JsonSerializable]
  comments: ["/** Generated. */"]
  members:
    - kind: use
      traits: [HasId]
    - kind: const
      name: TABLE
      modifiers: [public]
      value: {string: users}
    - kind: method
      name: __construct
      modifiers: [public]
      params:
        - {name: id, type: int, modifiers: [private, readonly]}
        - {name: email, type: string, modifiers: [private, readonly]}
        - {name: nickname, type: "?string", modifiers: [private, readonly], default: {const: "null"}}
    - kind: method
      name: email
      modifiers: [public]
      returns: string
      body:
        - return: {property: email}
`

const expectedUser = `<?php

declare(strict_types=1);

/** Generated. */
final class User implements JsonSerializable
{
    use HasId;

    public const TABLE = 'users';

    public function __construct(
        private readonly int $id,
        private readonly string $email,
        private readonly ?string $nickname = null,
    ) {
    }

    public function email(): string
    {
        return $this->email;
    }
}
`

func TestDecodeYAML(t *testing.T) {
	t.Parallel()
	e, err := codeprint.Decode(strings.NewReader(userYAML), codeprint.YAML)
	require.NoError(t, err)
	out, err := codeprint.Print(e)
	require.NoError(t, err)
	assert.Equal(t, expectedUser, out)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()
	doc := `{"class": {"name": "Point", "members": [
		{"kind": "property", "name": "x", "type": "int", "modifiers": ["public"], "value": {"int": 0}},
		{"kind": "method", "name": "reset", "modifiers": ["public"], "returns": "void", "body": [
			{"assign": {"property": "x", "value": {"int": 0}}, "comments": ["// origin"]},
			{"call": "log", "args": [{"string": "reset"}, {"var": "this"}]}
		]}
	]}}`
	e, err := codeprint.Decode(strings.NewReader(doc), codeprint.JSON)
	require.NoError(t, err)
	out, err := codeprint.Print(e)
	require.NoError(t, err)
	want := codeprint.Prologue + "class Point\n{\n" +
		"    public int $x = 0;\n\n" +
		"    public function reset(): void\n    {\n" +
		"        // origin\n        $this->x = 0;\n" +
		"        log('reset', $this);\n" +
		"    }\n}\n"
	assert.Equal(t, want, out)
}

func TestDecodeTOML(t *testing.T) {
	t.Parallel()
	doc := `
[class]
name = "Repo"
modifiers = ["abstract"]
extends = "Base"

[[class.members]]
kind = "method"
name = "find"
modifiers = ["abstract", "public"]
returns = "?Entity"

[[class.members.params]]
name = "id"
type = "int"
comments = ["// primary key"]
`
	e, err := codeprint.Decode(strings.NewReader(doc), codeprint.TOML)
	require.NoError(t, err)
	out, err := codeprint.Print(e)
	require.NoError(t, err)
	want := codeprint.Prologue + "abstract class Repo extends Base\n{\n" +
		"    public abstract function find(\n        // primary key\n        int $id,\n    ): ?Entity;\n" +
		"}\n"
	assert.Equal(t, want, out)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc    string
		format codeprint.Format
		want   error
	}{
		"unsupported format": {doc: "", format: "xml", want: codeprint.ErrUnsupportedFormat},
		"bad yaml":           {doc: "class: [", format: codeprint.YAML, want: codeprint.ErrInvalidDocument},
		"unknown yaml key":   {doc: "class: {name: A, color: red}", format: codeprint.YAML, want: codeprint.ErrInvalidDocument},
		"unknown json key":   {doc: `{"klass": {}}`, format: codeprint.JSON, want: codeprint.ErrInvalidDocument},
		"unknown toml key":   {doc: "[class]\nname = \"A\"\ncolor = \"red\"\n", format: codeprint.TOML, want: codeprint.ErrInvalidDocument},
		"missing class":      {doc: "{}", format: codeprint.JSON, want: codeprint.ErrInvalidDocument},
		"class without name": {doc: "class: {}", format: codeprint.YAML, want: codeprint.ErrInvalidDocument},
		"unknown member": {
			doc:    "class: {name: A, members: [{kind: enum}]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
		"unknown modifier": {
			doc:    "class: {name: A, modifiers: [sealed]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
		"abstract with body": {
			doc:    "class: {name: A, members: [{kind: method, name: m, modifiers: [abstract], body: [{var: x}]}]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
		"ambiguous value": {
			doc:    "class: {name: A, members: [{kind: const, name: X, value: {int: 1, string: a}}]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
		"empty statement": {
			doc:    "class: {name: A, members: [{kind: method, name: m, body: [{}]}]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
		"param without name": {
			doc:    "class: {name: A, members: [{kind: method, name: m, params: [{type: int}]}]}",
			format: codeprint.YAML,
			want:   codeprint.ErrInvalidDocument,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e, err := codeprint.Decode(strings.NewReader(tt.doc), tt.format)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, e)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    codeprint.Format
		wantErr require.ErrorAssertionFunc
	}{
		"yaml":    {input: "yaml", want: codeprint.YAML, wantErr: require.NoError},
		"json":    {input: "json", want: codeprint.JSON, wantErr: require.NoError},
		"toml":    {input: "toml", want: codeprint.TOML, wantErr: require.NoError},
		"unknown": {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := codeprint.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path    string
		want    codeprint.Format
		wantErr require.ErrorAssertionFunc
	}{
		"yml":       {path: "a/user.yml", want: codeprint.YAML, wantErr: require.NoError},
		"yaml":      {path: "user.YAML", want: codeprint.YAML, wantErr: require.NoError},
		"json":      {path: "user.json", want: codeprint.JSON, wantErr: require.NoError},
		"toml":      {path: "user.toml", want: codeprint.TOML, wantErr: require.NoError},
		"no ext":    {path: "user", want: "", wantErr: require.Error},
		"other ext": {path: "user.php", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := codeprint.FormatFromPath(tt.path)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := codeprint.Formats()
	assert.Equal(t, []codeprint.Format{codeprint.YAML, codeprint.JSON, codeprint.TOML}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, codeprint.YAML, codeprint.Formats()[0])
	assert.Equal(t, "toml", codeprint.TOML.String())
}
