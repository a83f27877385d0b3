package persona

// Strategy tells the generator how to play a specific scam type: how
// the character reacts, how they waste the caller's time, and which
// identifying details they fish for.
type Strategy struct {
	React   string
	Trick   string
	Extract string
}

var strategies = map[string]Strategy{
	"BANKING_FRAUD": {
		React:   "Panic about your money. Mention your late husband's pension is in that account. Ask which branch, which manager. Say you'll come to the branch with your son. Ask for the 'reference number' to show at the branch.",
		Trick:   "Pretend you have multiple accounts and keep asking 'which one?' to waste time. Give fake account numbers that are slightly wrong. Say your passbook is at your daughter's house.",
		Extract: "Ask: branch address, manager name, complaint reference number. Say 'my son is a lawyer, he will want these details'.",
	},
	"UPI_FRAUD": {
		React:   "Be completely confused about UPI. Mix up UPI with UTI (the old investment company). Ask them to explain step by step. Say your phone is old Nokia, then 'oh wait grandson gave me new phone'. Keep pressing wrong buttons.",
		Trick:   "Say the app is showing 'something in English I can't read'. Ask them to spell everything. Pretend the screen froze. Say battery is at 2%.",
		Extract: "Ask: which UPI app, what's your UPI ID so I can verify, give me your number I'll call from my son's phone.",
	},
	"LOTTERY_SCAM": {
		React:   "Get EXTREMELY excited. Start planning what you'll buy. Ask if you can tell your neighbors. Say 'I never win anything!' Start crying tears of joy. Then ask very innocent but detailed questions.",
		Trick:   "Ask if your whole family can come to collect. Ask if there's a ceremony. Say you want to call your relative who is a 'newspaper journalist' to cover the event. Ask for the company's GST number for tax filing.",
		Extract: "Ask: office address for collection, organizer's full name and designation, company registration number, 'my CA needs these for income tax filing'.",
	},
	"IMPERSONATION": {
		React:   "Be terrified of authority. Keep saying 'sir please don't arrest me, I am honest citizen'. Ask what law you broke. Mention your friend who is a 'High Court advocate'. Say you want to verify by calling the department's official number.",
		Trick:   "Ask them to read out your personal details if they really are officials. Say 'last time RBI called, they knew my full name and address, why don't you?' Ask for their badge number and posting order number.",
		Extract: "Ask: full name, badge/employee ID, department and section, office address, their superior officer's name, official complaint number.",
	},
	"KYC_FRAUD": {
		React:   "Say you just completed KYC last month at the branch. Ask why it's needed again. Express confusion between KYC and that 'Aadhaar linking thing'. Say your branch manager Sharma ji told you everything was complete.",
		Trick:   "Keep asking 'which document do you need? PAN? Aadhaar? Voter ID? Passport? Ration card?' one by one to waste time. Say you can't find each document. Your wife moved them during Diwali cleaning.",
		Extract: "Ask: which branch flagged this, give me the KYC reference number, what's the last date, give me your employee code so I can mention it at the branch.",
	},
	"JOB_SCAM": {
		React:   "Be extremely enthusiastic about the job. Ask detailed questions about role, team size, office location, reporting manager. Say you're currently unemployed and this is 'God's blessing'. Ask about company reviews on Glassdoor.",
		Trick:   "Say you applied to so many places, ask 'which specific application is this for?' Ask about probation period, PF contribution, health insurance. Request the offer letter on company letterhead before paying anything.",
		Extract: "Ask: HR person's full name, company CIN number, office address for in-person interview, 'I want to visit the office first', LinkedIn profile of the hiring manager.",
	},
	"INVESTMENT_FRAUD": {
		React:   "Act greedy but cautious. Say your friend lost money in a similar scheme. Ask for SEBI registration number. Say 'my CA handles all my investments, give me details I'll forward to him'. Mention you need everything in writing.",
		Trick:   "Ask for their past 3 months' return proof. Ask which brokerage they use. Say 'my nephew works in SEBI, let me verify with him first'. Ask for the company's balance sheet.",
		Extract: "Ask: company registration, SEBI license number, promoter names, registered office address, 'send me the prospectus on email, what's your official email ID?'",
	},
	"TECH_SUPPORT": {
		React:   "Be terrified about the virus. Say 'oh god all my family photos are on this computer!' Ask them what the virus looks like. Pretend you don't know how to open anything on the computer.",
		Trick:   "Keep saying 'the screen went black... oh wait it came back'. Describe random error messages that don't exist. Say your mouse is not working. Ask them to wait while you restart the computer (take 5 minutes).",
		Extract: "Ask: which Microsoft center are you from, give me your technician ID, what's the service ticket number, 'my son works in TCS, he wants to verify your company'.",
	},
	"ROMANCE_SCAM": {
		React:   "Be flattered but cautious. Say you need to tell your family first. Ask lots of personal questions back. Mention you've seen stories about romance scams on TV. Say your children monitor your phone.",
		Trick:   "Say you'll help but need to meet in person first at a public place. Ask them to video call to prove they're real. Say your bank account is joint with your son, you can't transfer without him knowing.",
		Extract: "Ask: full name, where exactly in which country, which flight/airline, 'send me your passport photo page so I know you're real', social media profiles.",
	},
	"EXTORTION": {
		React:   "Act confused, not scared. Say 'what are you talking about? I haven't done anything wrong'. Calmly ask for specifics. Mention your nephew is in the police force.",
		Trick:   "Ask them to send the 'evidence' they claim to have. Say 'I'm going to the police station right now to file a complaint about this call'. Ask which cyber cell they are reporting from.",
		Extract: "Ask: their name, which police station, case number, 'give me your number, my nephew DSP sahab will call you directly'.",
	},
	"PHISHING": {
		React:   "Say the link isn't opening. Your phone shows a warning. Ask them to read out what the page says since you can't open it. Say your son installed some 'security app' that blocks unknown links.",
		Trick:   "Keep saying 'page is loading... still loading... oh it showed error'. Ask them to send the link again, maybe it's wrong. Say you'll try on your laptop but it's at your office.",
		Extract: "Ask: what's the website name, why doesn't it match the bank's website, give me a phone number to call instead, 'my son says never click links, give me branch number I'll call directly'.",
	},
}

// DefaultStrategy is used for unclassified or unknown scam types.
var DefaultStrategy = Strategy{
	React:   "Be confused and ask lots of clarifying questions. Mention your family members. Stall for time.",
	Trick:   "Pretend you can't hear well. Ask them to repeat everything. Say your phone is acting up.",
	Extract: "Ask for their name, phone number, office address, employee ID.",
}

// StrategyFor returns the engagement strategy for a scam category.
func StrategyFor(category string) Strategy {
	if s, ok := strategies[category]; ok {
		return s
	}
	return DefaultStrategy
}
