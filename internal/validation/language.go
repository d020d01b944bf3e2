package validation

import "golang.org/x/text/language"

// supportedLanguages lists the instruction languages the service can render.
var supportedLanguages = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.MustParse("cs"),
	language.MustParse("de"),
	language.MustParse("es"),
	language.MustParse("eo"),
	language.MustParse("fr"),
	language.MustParse("el"),
	language.MustParse("he"),
	language.MustParse("hu"),
	language.MustParse("id"),
	language.MustParse("it"),
	language.MustParse("ja"),
	language.MustParse("nb"),
	language.MustParse("ne"),
	language.MustParse("nl"),
	language.MustParse("pl"),
	language.MustParse("pt"),
	language.MustParse("ro"),
	language.MustParse("ru"),
	language.MustParse("tr"),
	language.MustParse("zh"),
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// matchLanguage resolves a client language tag against the supported set.
// Tags that fail BCP 47 parsing or only match with low confidence are
// rejected rather than silently replaced by the fallback.
func matchLanguage(s string) (string, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf < language.High {
		return "", false
	}
	base, _ := supportedLanguages[idx].Base()
	return base.String(), true
}
