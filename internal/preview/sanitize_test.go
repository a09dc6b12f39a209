package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"plain", "hello", "hello"},
		{"paragraphs", "<p>one</p><p>two</p>", "one\ntwo"},
		{"breaks", "a<br>b<br/>c", "a\nb\nc"},
		{"list", "<ul><li>x</li><li>y</li></ul>", "• x\n• y"},
		{"entities", "<b>R&amp;D</b>", "R&D"},
		{"script dropped", "ok<script>alert(1)</script>", "ok"},
		{"blank runs collapse", "a<br><br><br><br>b", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
