package htmlsafe

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps structure", "<h3>Cells</h3><p>The <strong>nucleus</strong></p>", "<h3>Cells</h3><p>The <strong>nucleus</strong></p>"},
		{"drops script", "<p>hi</p><script>alert(1)</script>", "<p>hi</p>"},
		{"drops handlers", `<p onclick="x()">hi</p>`, "<p>hi</p>"},
		{"trims", "  <p>x</p>\n", "<p>x</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}
