package ensemble

import (
	"fmt"

	"golang.org/x/text/language"

	"tangle/internal/modality"
)

// Verdicts renders the final verdict sentence and disclaimer for one locale.
type Verdicts struct {
	tag        language.Tag
	unknown    string
	positive   string
	negative   string
	disclaimer string
}

var english = Verdicts{
	tag:        language.English,
	unknown:    "Final verdict: unknown (no module predictions are available).",
	positive:   "Final verdict: the subject is classified as having Alzheimer's disease (probability = %.3f).",
	negative:   "Final verdict: the subject is classified as not having Alzheimer's disease (probability = %.3f).",
	disclaimer: "Note: this is a model prediction and does not constitute a clinical diagnosis.",
}

var persian = Verdicts{
	tag:        language.Persian,
	unknown:    "نتیجه نهایی: نامعلوم (هیچ پیش‌بینی ماژولی در دسترس نیست).",
	positive:   "نتیجه نهایی: بیمار مبتلا به آلزایمر تشخیص داده شد (احتمال = %.3f).",
	negative:   "نتیجه نهایی: بیمار مبتلا به آلزایمر نیست (احتمال = %.3f).",
	disclaimer: "توجه: این یک پیش‌بینی مدل است و تشخیص بالینی محسوب نمی‌شود.",
}

var verdictMatcher = language.NewMatcher([]language.Tag{english.tag, persian.tag})

// VerdictsFor returns the verdict catalog closest to the requested locale,
// defaulting to English for unknown or malformed tags.
func VerdictsFor(locale string) Verdicts {
	tag, err := language.Parse(locale)
	if err != nil {
		return english
	}
	_, index, _ := verdictMatcher.Match(tag)
	if index == 1 {
		return persian
	}
	return english
}

// Render produces the verdict sentence for a combined summary. Probabilities
// are shown with three decimal places.
func (v Verdicts) Render(summary Summary) string {
	if summary.Probability == nil {
		return v.unknown
	}
	if summary.Label == modality.LabelAD {
		return fmt.Sprintf(v.positive, *summary.Probability)
	}
	return fmt.Sprintf(v.negative, *summary.Probability)
}

// Disclaimer returns the invariant non-clinical caveat sentence.
func (v Verdicts) Disclaimer() string {
	return v.disclaimer
}
