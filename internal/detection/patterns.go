package detection

import (
	"regexp"
	"strings"
)

// Category labels a scam classification.
type Category string

const (
	CategoryBankingFraud    Category = "BANKING_FRAUD"
	CategoryUPIFraud        Category = "UPI_FRAUD"
	CategoryPhishing        Category = "PHISHING"
	CategoryLotteryScam     Category = "LOTTERY_SCAM"
	CategoryImpersonation   Category = "IMPERSONATION"
	CategoryInvestmentFraud Category = "INVESTMENT_FRAUD"
	CategoryJobScam         Category = "JOB_SCAM"
	CategoryTechSupport     Category = "TECH_SUPPORT"
	CategoryRomanceScam     Category = "ROMANCE_SCAM"
	CategoryExtortion       Category = "EXTORTION"
	CategoryKYCFraud        Category = "KYC_FRAUD"
	CategoryUnknown         Category = "UNKNOWN"
)

const patternMatchWeight = 0.25

type patternRule struct {
	category Category
	patterns []*regexp.Regexp
}

// patternRules is evaluated front to back. Ties between categories keep
// the earlier one, so the slice order is part of the classification
// contract.
var patternRules = []patternRule{
	{
		category: CategoryBankingFraud,
		patterns: compileAll(
			`(account|a/c).*(block|suspend|frozen|close|deactivat)`,
			`(credit|debit)\s*card.*(block|expire|suspend)`,
			`(transaction|txn).*(fail|decline|suspicious|unauthori)`,
			`bank.*(call|contact|verify)`,
			`(atm|card).*(clone|hack|compromis)`,
		),
	},
	{
		category: CategoryUPIFraud,
		patterns: compileAll(
			`upi.*(id|pin|verify|update|block)`,
			`(payment|money).*(receive|collect|request|pending)`,
			`(refund|cashback).*(process|claim|receive|credit)`,
			`(phonepe|paytm|gpay|bhim).*(verify|update|link|block)`,
			`(request|collect).*(₹|rs|rupee|money)`,
		),
	},
	{
		category: CategoryKYCFraud,
		patterns: compileAll(
			`kyc.*(update|expire|pending|complete|verify)`,
			`(document|identity).*(verify|upload|submit)`,
			`(aadhaar|pan|passport).*(link|verify|update)`,
			`(wallet|account).*(suspend|block).*kyc`,
		),
	},
	{
		category: CategoryPhishing,
		patterns: compileAll(
			`click.*(link|here|below|button)`,
			`(download|install).*(app|software|apk)`,
			`(login|sign\s*in).*(secure|verify|confirm)`,
			`(verify|confirm).*(identity|account|email)`,
			`http[s]?://[^\s]*\.(xyz|tk|ml|ga|cf|top)`,
		),
	},
	{
		category: CategoryLotteryScam,
		patterns: compileAll(
			`(won|winner|selected).*(lottery|prize|lucky|draw)`,
			`(claim|collect).*(prize|reward|winning|gift)`,
			`congratulations.*(selected|won|winner|lucky)`,
			`(lucky|prize).*(draw|winner|number)`,
		),
	},
	{
		category: CategoryImpersonation,
		patterns: compileAll(
			`(rbi|reserve\s*bank|sebi|income\s*tax|customs|cbi|police)`,
			`(government|official|department).*(notice|order|letter)`,
			`(customer\s*care|support|helpline).*(number|call)`,
			`(manager|officer|executive).*(speaking|calling|here)`,
		),
	},
	{
		category: CategoryInvestmentFraud,
		patterns: compileAll(
			`(invest|trading).*(guaranteed|assured|double|triple)`,
			`(crypto|bitcoin|forex).*(profit|return|gain)`,
			`(stock|share).*(tip|advice|insider|guaranteed)`,
			`(return|profit).*(100%|200%|daily|weekly|monthly)`,
		),
	},
	{
		category: CategoryJobScam,
		patterns: compileAll(
			`(job|work).*(home|online|part\s*time|remote)`,
			`(earn|income|salary).*(daily|weekly|monthly|lakh|thousand)`,
			`(registration|joining).*(fee|charge|payment)`,
			`(data\s*entry|typing|copy\s*paste).*(job|work)`,
		),
	},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}

// PatternScore matches every rule set against text and returns the
// best-scoring category, its score (0.25 per matched pattern, capped at
// 1.0) and the matched pattern sources per category.
func PatternScore(text string) (Category, float64, map[string][]string) {
	lower := strings.ToLower(text)
	best := CategoryUnknown
	bestScore := 0.0
	matches := make(map[string][]string)

	for _, rule := range patternRules {
		catScore := 0.0
		var matched []string
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				catScore += patternMatchWeight
				matched = append(matched, re.String())
			}
		}
		matches[string(rule.category)] = matched
		if catScore > bestScore {
			if catScore > 1.0 {
				catScore = 1.0
			}
			bestScore = catScore
			best = rule.category
		}
	}

	return best, bestScore, matches
}
