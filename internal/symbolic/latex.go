package symbolic

import (
	"strings"
	"unicode"
)

var greekLaTeX = map[string]string{
	"alpha": `\alpha`, "beta": `\beta`, "gamma": `\gamma`, "delta": `\delta`,
	"epsilon": `\epsilon`, "zeta": `\zeta`, "eta": `\eta`, "theta": `\theta`,
	"iota": `\iota`, "kappa": `\kappa`, "lambda": `\lambda`, "lamda": `\lambda`,
	"mu": `\mu`, "nu": `\nu`, "xi": `\xi`, "omicron": "o", "rho": `\rho`,
	"sigma": `\sigma`, "tau": `\tau`, "upsilon": `\upsilon`, "phi": `\phi`,
	"chi": `\chi`, "psi": `\psi`, "omega": `\omega`,
	"Gamma": `\Gamma`, "Delta": `\Delta`, "Theta": `\Theta`, "Lambda": `\Lambda`,
	"Xi": `\Xi`, "Pi": `\Pi`, "Sigma": `\Sigma`, "Upsilon": `\Upsilon`,
	"Phi": `\Phi`, "Psi": `\Psi`, "Omega": `\Omega`,
	"Alpha": "A", "Beta": "B", "Epsilon": "E", "Zeta": "Z", "Eta": "H",
	"Iota": "I", "Kappa": "K", "Mu": "M", "Nu": "N", "Omicron": "O",
	"Rho": "P", "Tau": "T", "Chi": "X",
}

// symbolLaTeX renders a symbol name. Greek letter names become commands,
// "_" separated suffixes and a trailing run of digits become subscripts:
// alpha_1 -> \alpha_{1}, x2 -> x_{2}.
func symbolLaTeX(name string) string {
	if strings.HasPrefix(name, "_") {
		return strings.ReplaceAll(name, "_", `\_`)
	}
	parts := strings.Split(name, "_")
	base := parts[0]
	var subs []string
	for _, p := range parts[1:] {
		if p != "" {
			subs = append(subs, greekName(p))
		}
	}
	if len(subs) == 0 {
		if letters, digits, ok := splitTrailingDigits(base); ok {
			base = letters
			subs = []string{digits}
		}
	}
	out := greekName(base)
	if len(subs) > 0 {
		out += "_{" + strings.Join(subs, " ") + "}"
	}
	return out
}

func greekName(s string) string {
	if g, ok := greekLaTeX[s]; ok {
		return g
	}
	return s
}

// splitTrailingDigits splits names of the form letters+digits.
func splitTrailingDigits(s string) (string, string, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(s) {
		return "", "", false
	}
	for _, r := range s[:i] {
		if !unicode.IsLetter(r) {
			return "", "", false
		}
	}
	return s[:i], s[i:], true
}
