package lint

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/internal/validator"
	"github.com/thoreinstein/fmcheck/pkg/frontmatter"
)

const (
	validTOML = `+++
title = "Hello"
summary = "A short post"
date = 2024-05-01T09:00:00Z
tags = ["go", "hugo"]
+++

Body.
`
	yamlNoTags = `---
title: Hello
description: A short post
date: 2024-05-01
---
Body.
`
	jsonOneTag = `{
  "title": "Hello",
  "summary": "A short post",
  "date": "2024-05-01",
  "tags": ["a"]
}

Body.
`
	capitalizedYAML = `---
Title: Hello
Summary: A short post
Date: 2024-05-01
Tags:
  - go
  - hugo
---
`
	noFrontmatter = "# Hello\n\ntitle: not front-matter\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLinter(t *testing.T, policy *config.Policy) (*Linter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	l, err := New(policy, validator.NewReporter(&out), WithLogger(logging.ForTest(t)))
	require.NoError(t, err)
	return l, &out
}

func TestLinter_CheckFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		wantFields []string
	}{
		{"valid toml passes", validTOML, []string{}},
		{"yaml without tags", yamlNoTags, []string{RuleTags}},
		{"json with one tag", jsonOneTag, []string{RuleTags}},
		{"capitalized keys pass", capitalizedYAML, []string{}},
		{"no front-matter", noFrontmatter, []string{RuleFrontmatter}},
		{"empty file", "", []string{RuleFrontmatter}},
		{"empty toml block", "+++\n+++\n", []string{RuleTitle, RuleSummary, RuleDate, RuleTags}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, string(rune('a'+i))+".md", tt.content)
			l, _ := newLinter(t, config.Default())

			result, err := l.CheckFile(t.Context(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, result.Fields())
		})
	}
}

func TestLinter_CheckFile_Fatal(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"malformed toml", writeFile(t, dir, "bad.toml.md", "+++\ntitle = \n+++\n"), frontmatter.ErrInvalidTOML},
		{"malformed yaml", writeFile(t, dir, "bad.yaml.md", "---\ntitle: [x\n---\n"), frontmatter.ErrInvalidYAML},
		{"unterminated json", writeFile(t, dir, "bad.json.md", "{\n\"title\": \"x\",\n"), frontmatter.ErrInvalidJSON},
		{"custom yaml tag", writeFile(t, dir, "tag.md", "---\ntags: !custom [a, b]\n---\n"), frontmatter.ErrInvalidYAML},
		{"invalid utf-8", writeFile(t, dir, "latin1.md", "+++\ntitle = 'caf\xe9'\n+++\n"), frontmatter.ErrInvalidUTF8},
		{"unsized tags", writeFile(t, dir, "num.md", "+++\ntitle='t'\nsummary='s'\ndate='d'\ntags = 3\n+++\n"), ErrUnsizedTags},
		{"missing file", filepath.Join(dir, "absent.md"), os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLinter(t, config.Default())
			_, err := l.CheckFile(t.Context(), tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestLinter_Run_Diagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.md", yamlNoTags)

	l, out := newLinter(t, config.Default())
	sum, err := l.Run(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, "In file "+path+", missing `tags` in front-matter\n", out.String())
	assert.Equal(t, Summary{Checked: 1, Failed: 1}, sum)
	assert.False(t, sum.OK())
}

func TestLinter_Run_MissingFrontmatterMessage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.md", noFrontmatter)

	l, out := newLinter(t, config.Default())
	sum, err := l.Run(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, "In file "+path+", missing front-matter\n", out.String())
	assert.False(t, sum.OK())
}

func TestLinter_Run_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.md", jsonOneTag)
	l, out := newLinter(t, config.Default())

	first, err := l.Run(t.Context(), []string{path})
	require.NoError(t, err)
	firstOut := out.String()
	out.Reset()

	second, err := l.Run(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstOut, out.String())
	assert.Contains(t, firstOut, "minimum 2 `tags` required in front-matter")
}

func TestLinter_Run_AggregatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	failing := writeFile(t, dir, "a-failing.md", yamlNoTags)
	passing := writeFile(t, dir, "b-passing.md", validTOML)

	tests := []struct {
		name  string
		paths []string
	}{
		{"failing then passing", []string{failing, passing}},
		{"passing then failing", []string{passing, failing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLinter(t, config.Default())
			sum, err := l.Run(t.Context(), tt.paths)
			require.NoError(t, err)

			// A later passing file must not hide an earlier failure.
			assert.Equal(t, Summary{Checked: 2, Failed: 1}, sum)
			assert.False(t, sum.OK())
		})
	}
}

func TestLinter_Run_BasePath(t *testing.T) {
	dir := t.TempDir()
	inside := writeFile(t, dir, "content/post.md", validTOML)
	outside := writeFile(t, dir, "static/readme.md", noFrontmatter)

	policy := config.Default()
	policy.BasePath = filepath.Join(dir, "content")

	l, out := newLinter(t, policy)
	sum, err := l.Run(t.Context(), []string{inside, outside})
	require.NoError(t, err)

	assert.Equal(t, Summary{Checked: 1, Skipped: 1}, sum)
	assert.True(t, sum.OK())
	assert.Empty(t, out.String())
}

func TestLinter_Run_ExcludedFileIsNeverOpened(t *testing.T) {
	dir := t.TempDir()
	// Unreadable content would abort the run if the file were opened.
	excluded := filepath.Join(dir, "drafts", "does-not-exist.md")
	broken := writeFile(t, dir, "drafts/broken.md", "---\ntitle: [x\n---\n")
	good := writeFile(t, dir, "posts/good.md", validTOML)

	policy := config.Default()
	policy.Exclude = []string{regexp.QuoteMeta(filepath.Join(dir, "drafts"))}

	l, out := newLinter(t, policy)
	sum, err := l.Run(t.Context(), []string{excluded, broken, good})
	require.NoError(t, err)

	assert.Equal(t, Summary{Checked: 1, Skipped: 2}, sum)
	assert.Empty(t, out.String())
}

func TestLinter_Run_ExcludeIsAnchored(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "content/drafts/post.md", noFrontmatter)

	policy := config.Default()
	policy.Exclude = []string{"drafts"}

	l, out := newLinter(t, policy)
	sum, err := l.Run(t.Context(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Checked, "pattern only matches mid-path so the file is still checked")
	assert.Contains(t, out.String(), "missing front-matter")
}

func TestLinter_Run_FatalStopsBatch(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "1.md", yamlNoTags)
	broken := writeFile(t, dir, "2.md", "+++\ntitle = \n+++\n")
	third := writeFile(t, dir, "3.md", noFrontmatter)

	l, out := newLinter(t, config.Default())
	sum, err := l.Run(t.Context(), []string{first, broken, third})
	require.Error(t, err)
	assert.True(t, errors.Is(err, frontmatter.ErrInvalidTOML))

	assert.Equal(t, 1, sum.Checked)
	assert.Contains(t, out.String(), first)
	assert.NotContains(t, out.String(), third)
}

func TestLinter_Run_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.md", validTOML)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	l, _ := newLinter(t, config.Default())
	sum, err := l.Run(ctx, []string{path})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, sum.Checked)
}

func TestLinter_Run_Empty(t *testing.T) {
	l, out := newLinter(t, nil)
	sum, err := l.Run(t.Context(), nil)
	require.NoError(t, err)
	assert.True(t, sum.OK())
	assert.Empty(t, out.String())
}

func TestNew_InvalidPolicy(t *testing.T) {
	policy := config.Default()
	policy.Exclude = []string{"("}

	_, err := New(policy, validator.NewReporter(&bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
