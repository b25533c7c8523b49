package rules

import "strings"

// cascade returns the rule steps in evaluation order. The order is a
// documented tie-break, not an accident: visual defects outrank label, copy
// and action wording, and dimension checks run only after everything else
// failed. Keep new steps ahead of the dimension step unless they must lose
// to it.
func cascade() []rule {
	return []rule{
		{name: "visual/background", match: matchVisualBackground},
		{name: "label", match: matchLabel},
		{name: "close-up sequence", match: matchCloseUp},
		{name: "copy", match: matchCopy},
		{name: "action video", match: matchActionVideo},
		{name: "unbox", match: matchUnbox},
		{name: "other", match: matchOther},
		{name: "dimensions", match: matchDimensions},
	}
}

func matchVisualBackground(text, _ string) string {
	switch {
	case containsAny(text, "white obstruction", "white blur", "bbox", "bounding box"):
		return "BBOX issue"
	case containsAny(text, "plate is visible", "visible plate", "visible stage",
		"equipment visible", "stage visible"):
		return "Visible stage / equipment"
	case containsAny(text, "glitchy background", "masking issue", "visual glitch",
		"glitch", "masking background", "distortion") ||
		(strings.Contains(text, "distorted") && strings.Contains(text, "spin")):
		return "Visual glitches"
	case (strings.Contains(text, "blend") && strings.Contains(text, "background")) ||
		containsAny(text, "barely visible", "hard to see", "white product issue",
			"product blends with background"):
		return "Color correction - white product"
	case containsAny(text, "grading", "too dark", "too bright", "exposure", "cc needed"):
		return "Color correction - other"
	}
	return ""
}

func matchLabel(text, name string) string {
	switch {
	case strings.Contains(text, "label") &&
		containsAny(text, "crop", "zoom", "framing", "not fully visible"):
		return "Bad label - framing"
	case strings.Contains(text, "label") &&
		containsAny(text, "angle", "position", "orientation", "set up", "setup"):
		return "Bad label - set up"
	case containsAny(name, "label issue", "label video issue"):
		return "Bad label artifact"
	}
	return ""
}

func matchCloseUp(text, name string) string {
	if containsAny(name, "cu sequence issue", "close up sequence") {
		switch {
		case strings.Contains(text, "framing"):
			return "Bad close up sequence - bad framing"
		case containsAny(text, "repetitive", "repetition"):
			return "Bad close up sequence - repetitive edits"
		}
		return "Bad close up sequence"
	}
	if containsAny(text, "close up", "close-up", "cu ") {
		switch {
		case strings.Contains(text, "framing"):
			return "Bad close up sequence - bad framing"
		case strings.Contains(text, "repetitive"):
			return "Bad close up sequence - repetitive edits"
		}
		return "Bad close up sequence"
	}
	return ""
}

func matchCopy(text, name string) string {
	if (strings.Contains(text, "repetitive") && strings.Contains(text, "copy")) ||
		containsAny(name, "repetitive copies", "repetitive copy") {
		return "Repetitive copy"
	}
	if containsAny(text, "lowercase", "uppercase", "capital", "symbols in text",
		"grammar error", "illogical text") ||
		containsAny(name, "text issue", "bad copies", "bad copy") {
		return "Bad copy"
	}
	return ""
}

func matchActionVideo(text, name string) string {
	if containsAny(name, "action video issue", "see in action") ||
		containsAny(text, "editing issue", "first shot is unnecessary", "illogical demonstration") {
		return "Action video edit"
	}
	if strings.Contains(text, "action") && strings.Contains(text, "framing") {
		return "Action video framing"
	}
	if containsAny(text, "action video", "action shot") {
		if containsAny(text, "color", "cc ") {
			return "Color correction - Action shot"
		}
		return "Action video edit"
	}
	return ""
}

func matchUnbox(text, name string) string {
	if strings.Contains(name, "unbox") || strings.Contains(text, "unbox") {
		return "Bad unbox artifact"
	}
	return ""
}

// matchOther covers the remaining single-keyword-family issues. The case
// order is load-bearing the same way the cascade order is.
func matchOther(text, name string) string {
	switch {
	case containsAny(text, "date code", "lot number", "lot code"):
		return "Date code/LOT number shown"
	case strings.Contains(text, "black frame"):
		return "Black frames in video"
	case containsAny(text, "blurry", "out of focus", "blur"):
		return "Blurry/out of focus video"
	case containsAny(text, "dirty plate", "dirty background", "dirty floor"):
		return "Damage/dirty plate"
	case containsAny(text, "damaged product", "product is damaged", "bent", "scratched"):
		return "Damaged product"
	case containsAny(text, "reflection", "glare"):
		return "Reflections on product"
	case containsAny(text, "missing set", "multi-pack issue") ||
		strings.Contains(name, "missing items"):
		return "Missing set in intro/360"
	case containsAny(text, "off center", "off axis", "not centered"):
		return "Off centered / Off axis"
	case strings.Contains(text, "feature crop") ||
		(strings.Contains(text, "feature") && strings.Contains(text, "cut off")):
		return "Feature crop"
	case strings.Contains(text, "video content does not align with feature") ||
		(strings.Contains(text, "feature") && strings.Contains(text, "not matching")):
		return "Feature not matching copy"
	case strings.Contains(name, "duplicate feature text"):
		return "Repetitive features"
	case strings.Contains(text, "inconsistent color"):
		return "Inconsistent color"
	case strings.Contains(text, "transparent") && strings.Contains(text, "color"):
		return "Color correction - transparent product"
	case containsAny(text, "missing navigation", "navigation item"):
		return "Missing navigation item"
	case strings.Contains(text, "pdp mismatch") ||
		(strings.Contains(text, "pdp") && strings.Contains(text, "differ")):
		return "PDP mismatch"
	case containsAny(text, "ui obstruction", "ui element"):
		return "UI obstruction"
	case containsAny(text, "360 loop", "seamless") ||
		(strings.Contains(text, "360") && strings.Contains(text, "jump")):
		return "Un-seamless 360 loop"
	}
	return ""
}

// matchDimensions runs last. Without a dimension keyword it abstains; with
// one it always labels, defaulting to "Incorrect dimension values" when no
// sub-pattern narrows it down.
func matchDimensions(text, _ string) string {
	if !containsAny(text, "dimension", "measurement") {
		return ""
	}
	switch {
	case containsAny(text, "illogical", "wrong", "incorrect"):
		return "Incorrect dimension values"
	case containsAny(text, "mixed", "multiple format"):
		return "Dimensions - mixed values"
	case containsAny(text, "missing", "no dimension"):
		return "Missing dimension values"
	case strings.Contains(text, "mismatch") && strings.Contains(text, "product name"):
		return "Dimensions/product name mismatch"
	case containsAny(text, "alignment", "position"):
		return "Dimensions alignment"
	case strings.Contains(text, "set shot"):
		return "Dimensions using a set shot"
	}
	return "Incorrect dimension values"
}
