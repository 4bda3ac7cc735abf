package config

// FormatRuleID renders a rule identifier in the given format, falling back
// to the ID when the name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatName:
		return ruleName
	default:
		return ruleName
	}
}
