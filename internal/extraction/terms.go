package extraction

// TermCategory groups suspicious phrases under a semantic label. The
// declaration order below is the canonical category order: keyword
// extraction and scoring both walk it front to back, so output order is
// deterministic.
type TermCategory struct {
	Key   string
	Terms []string
}

// TermCategories holds the multilingual suspicious-term tables
// (English, Hindi, Tamil, Telugu, Kannada, Malayalam, Bengali, Marathi).
var TermCategories = []TermCategory{
	{
		Key: "urgency",
		Terms: []string{
			"urgent", "immediately", "now", "today only", "last chance", "expires", "hurry",
			"quick", "asap", "limited time", "act now", "deadline", "emergency", "fast",
			"quickly", "right now", "don't delay", "time sensitive", "expiring",
			"तुरंत", "अभी", "जल्दी", "फौरन", "आखिरी मौका", "समय सीमा", "देर न करें",
			"உடனடியாக", "இப்போது", "அவசரம்", "விரைவாக",
			"వెంటనే", "ఇప్పుడు", "త్వరగా", "ఆలస్యం చేయకండి",
			"ತಕ್ಷಣ", "ಈಗಲೇ", "ಬೇಗ",
			"ഉടനെ", "ഇപ്പോൾ", "വേഗം",
			"এখনই", "তাড়াতাড়ি", "জরুরি",
			"लगेच", "आता", "तातडीने",
		},
	},
	{
		Key: "threat",
		Terms: []string{
			"blocked", "suspended", "frozen", "legal action", "police", "arrest", "court",
			"penalty", "fine", "seized", "terminated", "disabled", "compromised", "hacked",
			"unauthorized", "illegal", "violation", "warning", "alert", "deactivate",
			"closed", "locked", "restricted", "banned",
			"ब्लॉक", "बंद", "कानूनी कार्रवाई", "पुलिस", "गिरफ्तार", "जुर्माना", "अवैध", "चेतावनी",
			"தடை", "நிறுத்தப்பட்டது", "சட்ட நடவடிக்கை", "காவல்துறை",
			"బ్లాక్", "నిలిపివేయబడింది", "చట్టపరమైన చర్య",
			"ನಿರ್ಬಂಧಿಸಲಾಗಿದೆ", "ಕಾನೂನು ಕ್ರಮ",
			"ബ്ലോക്ക്", "നിയമനടപടി",
			"ব্লক", "আইনি পদক্ষেপ",
			"कायदेशीर कारवाई",
		},
	},
	{
		Key: "credential_request",
		Terms: []string{
			"otp", "pin", "password", "cvv", "card number", "account number", "verify",
			"confirm", "update", "share", "send", "provide", "enter", "aadhaar", "pan",
			"bank details", "login", "credentials", "secret code", "verification code",
			"atm pin", "internet banking", "mobile banking", "net banking", "debit card",
			"credit card",
			"ओटीपी", "पिन", "पासवर्ड", "सत्यापित करें", "आधार", "पैन",
			"கடவுச்சொல்", "சரிபார்க்க", "ஆதார்",
			"పాస్‌వర్డ్", "ధృవీకరించండి", "ఆధార్",
			"ಪಾಸ್‌ವರ್ಡ್", "ಪರಿಶೀಲಿಸಿ",
			"പാസ്‌വേഡ്", "സ്ഥിരീകരിക്കുക",
			"পাসওয়ার্ড", "যাচাই করুন",
			"सत्यापित करा",
		},
	},
	{
		Key: "money_request",
		Terms: []string{
			"transfer", "payment", "pay", "send money", "deposit", "fee", "charge", "cost",
			"rupees", "rs", "inr", "amount", "₹", "processing fee", "registration fee",
			"advance", "token amount", "security deposit",
			"भुगतान", "पैसे भेजो", "रुपये", "शुल्क", "फीस", "जमा",
			"பணம்", "செலுத்து", "கட்டணம்",
			"డబ్బు", "చెల్లించు", "ఫీజు",
			"ಹಣ", "ಪಾವತಿ", "ಶುಲ್ಕ",
			"പണം", "അടയ്ക്കുക", "ഫീസ്",
			"টাকা", "পাঠান", "ফি",
			"पैसे", "भरा",
		},
	},
	{
		Key: "reward",
		Terms: []string{
			"winner", "congratulations", "selected", "prize", "reward", "cashback",
			"refund", "bonus", "lottery", "lucky", "won", "claim", "free", "gift",
			"offer", "jackpot", "bumper", "lucky draw", "scratch card",
			"जीत", "इनाम", "बधाई", "कैशबैक", "मुफ्त", "लॉटरी", "विजेता",
			"பரிசு", "வென்றீர்கள்", "வாழ்த்துக்கள்",
			"బహుమతి", "గెలిచారు", "అభినందనలు",
			"ಬಹುಮಾನ", "ಗೆದ್ದಿದ್ದೀರಿ",
			"സമ്മാനം", "വിജയിച്ചു",
			"পুরস্কার", "জিতেছেন",
			"बक्षीस", "जिंकलात",
		},
	},
	{
		Key: "impersonation",
		Terms: []string{
			"bank manager", "rbi", "reserve bank", "income tax", "customs", "cbi",
			"cyber cell", "customer care", "support team", "government", "official",
			"sbi", "hdfc", "icici", "axis", "paytm", "phonepe", "gpay", "amazon",
			"flipkart", "microsoft", "apple", "google", "facebook", "whatsapp",
			"telegram", "police", "officer", "inspector", "department", "ministry",
			"बैंक मैनेजर", "आयकर विभाग", "सरकारी", "पुलिस अधिकारी", "विभाग",
			"வங்கி மேலாளர்", "அரசு அதிகாரி",
			"బ్యాంక్ మేనేజర్", "ప్రభుత్వ అధికారి",
		},
	},
	{
		Key: "kyc",
		Terms: []string{
			"kyc", "know your customer", "verification required", "update kyc",
			"kyc expire", "document verification", "identity proof", "re-kyc",
			"video kyc", "ekyc", "kyc update", "kyc pending", "complete kyc",
			"केवाईसी", "दस्तावेज़ सत्यापन",
			"கேஒய்சி",
			"కెవైసి",
		},
	},
	{
		Key: "tech_scam",
		Terms: []string{
			"virus", "malware", "infected", "hacked", "compromised", "remote access",
			"teamviewer", "anydesk", "technical support", "microsoft support",
			"apple support", "computer problem", "antivirus", "firewall", "security alert",
		},
	},
	{
		Key: "investment_scam",
		Terms: []string{
			"guaranteed returns", "double money", "triple money", "100% profit",
			"daily profit", "weekly returns", "crypto", "bitcoin", "forex", "trading",
			"investment opportunity", "high returns", "low risk", "no risk",
			"assured returns", "fixed returns",
		},
	},
}

// PaymentSuffixes lists the handle suffixes of known payment providers.
// A token@suffix match is classified as a payment handle, and any email
// ending in one of these is excluded from the email artifact set.
var PaymentSuffixes = []string{
	"upi", "ybl", "paytm", "okaxis", "okhdfcbank", "oksbi", "okicici", "apl",
	"axisbank", "ibl", "sbi", "hdfcbank", "icici", "kotak", "indus",
}
