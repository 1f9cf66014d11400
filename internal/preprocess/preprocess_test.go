package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinyasm/internal/preprocess"
)

func TestMinifyStripsCommentsAndBlankLines(t *testing.T) {
	src := "mov %RAX, 1 ; load one\n\n  \nhlt ; done\n"
	got := preprocess.Minify(src)
	assert.Equal(t, "mov %RAX, 1\nhlt", got)
}

func TestMinifyCollapsesWhitespace(t *testing.T) {
	got := preprocess.Minify("mov    %RAX,\t1")
	assert.Equal(t, "mov %RAX, 1", got)
}

func TestMinifyIdempotent(t *testing.T) {
	src := "mov %RAX, 1 ; comment\nadd %RAX, 2"
	once := preprocess.Minify(src)
	twice := preprocess.Minify(once)
	assert.Equal(t, once, twice)
}
