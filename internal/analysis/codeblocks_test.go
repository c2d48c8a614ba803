package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("tagged block", func(t *testing.T) {
		t.Parallel()
		text := "Here is the solution:\n```python\ndef fib(n):\n    return n\n```\nDone."
		blocks := ExtractCodeBlocks(text, "gpt")

		require.Len(t, blocks, 1)
		assert.Equal(t, "python", blocks[0].Language)
		assert.Equal(t, "def fib(n):\n    return n", blocks[0].Code)
		assert.Equal(t, "gpt", blocks[0].SourceBackendID)
	})

	t.Run("untagged block defaults to plaintext", func(t *testing.T) {
		t.Parallel()
		blocks := ExtractCodeBlocks("```\nplain body\n```", "b")

		require.Len(t, blocks, 1)
		assert.Equal(t, DefaultLanguage, blocks[0].Language)
		assert.Equal(t, "plain body", blocks[0].Code)
	})

	t.Run("language tag is lowercased", func(t *testing.T) {
		t.Parallel()
		blocks := ExtractCodeBlocks("```Go\nfmt.Println()\n```", "b")

		require.Len(t, blocks, 1)
		assert.Equal(t, "go", blocks[0].Language)
	})

	t.Run("exactly k blocks are recovered", func(t *testing.T) {
		t.Parallel()
		for k := 0; k <= 4; k++ {
			var sb strings.Builder
			for i := 0; i < k; i++ {
				fmt.Fprintf(&sb, "Paragraph %d.\n```js\nconsole.log(%d)\n```\n", i, i)
			}
			blocks := ExtractCodeBlocks(sb.String(), "b")
			assert.Len(t, blocks, k, "k=%d", k)
		}
	})

	t.Run("unterminated opening marker is ignored", func(t *testing.T) {
		t.Parallel()
		blocks := ExtractCodeBlocks("prose\n```go\nfunc main() {}", "b")
		assert.Empty(t, blocks)
	})

	t.Run("no blocks in plain prose", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ExtractCodeBlocks("just a paragraph of text", "b"))
	})
}

func TestStripCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("removes fenced regions", func(t *testing.T) {
		t.Parallel()
		text := "Before.\n```go\nfunc x() {}\n```\nAfter."
		got := StripCodeBlocks(text)

		assert.Contains(t, got, "Before.")
		assert.Contains(t, got, "After.")
		assert.NotContains(t, got, "func x()")
	})

	t.Run("unterminated region removed to end", func(t *testing.T) {
		t.Parallel()
		got := StripCodeBlocks("Prose.\n```go\ntrailing code")
		assert.Equal(t, "Prose.\n", got)
	})
}

func TestClassifyComplexity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want Complexity
	}{
		{
			name: "no code blocks is always Low",
			text: "for while if else try catch recursion in prose only",
			want: ComplexityLow,
		},
		{
			name: "plain assignment is Low",
			text: "```python\nx = 1\n```",
			want: ComplexityLow,
		},
		{
			name: "loop plus branch plus function is Medium",
			text: "```python\ndef f(xs):\n    for x in xs:\n        if x > 0:\n            return x\n```",
			want: ComplexityMedium,
		},
		{
			name: "exception handling and recursion push to High",
			text: "```python\ndef walk(node):\n    # recursive descent\n    try:\n        for child in node:\n            walk(child)\n    except ValueError:\n        pass\n```",
			want: ComplexityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			blocks := ExtractCodeBlocks(tt.text, "b")
			assert.Equal(t, tt.want, ClassifyComplexity(blocks))
		})
	}
}
