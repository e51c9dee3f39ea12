package scenario

import "github.com/nao1215/sentinel/internal/model"

// Built-in scenario names.
const (
	NamePhone    = "phone"
	NameWallet   = "wallet"
	NameMessages = "messages"
	NameBrowser  = "browser"
	NameQR       = "qr"
)

func builtins() []Scenario {
	return []Scenario{
		{
			Name:    NameMessages,
			Label:   "SMS Monitor",
			Source:  "SMS Monitor",
			Context: model.ContextMessages,
			Text:    "URGENT: Your Bank Account has been suspended due to suspicious activity. Verify KYC now at http://secure-bank-kyc.xy/verify",
			Recorded: &model.AnalysisResult{
				RiskScore: 92,
				Category:  model.CategoryKYCFraud,
				Flags:     []string{"Urgency Pressure", "Unverified Domain", "KYC Lure"},
				TechnicalSignals: []string{
					"Link points to .xy domain impersonating a bank",
					"Account suspension threat used to force action",
				},
				PreventiveAction: "Link Quarantined",
				SafeActionAdvice: "Do not open the link. Banks never ask for KYC updates over SMS; contact your branch directly.",
			},
		},
		{
			Name:    NamePhone,
			Label:   "Incoming Call",
			Source:  "Live Call Analysis",
			Context: model.ContextPhone,
			Text:    "[Transcript]... Sir, this is the Cyber Crime Branch. Your Aadhar card is linked to money laundering. We need to verify your biometrics immediately or you will be arrested in 1 hour...",
			Recorded: &model.AnalysisResult{
				RiskScore: 99,
				Category:  model.CategoryImpersonation,
				Flags:     []string{"Cyber Arrest Threat", "Authority Impersonation", "Biometric Request"},
				TechnicalSignals: []string{
					"Caller claims to be the Cyber Crime Branch",
					"Arrest deadline used as pressure",
				},
				PreventiveAction: "Terminate Call",
				SafeActionAdvice: "Hang up. Police never verify identity or demand biometrics over a phone call.",
			},
		},
		{
			Name:    NameWallet,
			Label:   "UPI Payment",
			Source:  "Payment Gateway",
			Context: model.ContextWallet,
			Text:    "Transaction Attempt: ₹45,000 to 'Support-Refund-Desk' (UPI ID: refund@okhdfc). Note: Security Deposit for Lottery Claim.",
			Recorded: &model.AnalysisResult{
				RiskScore: 95,
				Category:  model.CategoryFinancialFraud,
				Flags:     []string{"Security Deposit Scam", "Lottery Fee", "Mule Pattern"},
				TechnicalSignals: []string{
					"Payee name mimics a refund desk",
					"Payment note mentions a lottery security deposit",
				},
				PreventiveAction: "Block Transaction",
				SafeActionAdvice: "Do not pay. Genuine prizes never require a deposit to be released.",
			},
		},
		{
			Name:    NameBrowser,
			Label:   "Browser Guard",
			Source:  "Browser Guard",
			Context: model.ContextBrowser,
			Text:    "Security Alert: User focused OTP input field on unverified domain (crypto-giveaway-tesla.com). Suspicious pattern: Credential Harvesting.",
			Recorded: &model.AnalysisResult{
				RiskScore: 100,
				Category:  model.CategoryOTPTheft,
				Flags:     []string{"Credential Harvesting", "Unverified Domain", "OTP Field Focus"},
				TechnicalSignals: []string{
					"OTP input focused on crypto-giveaway-tesla.com",
					"Domain not linked to any registered issuer",
				},
				PreventiveAction: "Keyboard Input Disabled",
				SafeActionAdvice: "Close this page. Never type an OTP into a site you reached from a giveaway.",
			},
		},
		{
			Name:    NameQR,
			Label:   "QR Shield",
			Source:  "QR Shield",
			Context: model.ContextQR,
			Text:    "Scanned Data: http://pay-city-parking.biz/q/8271. Detected location: Public Meter. Risk Indicator: Sticker overlay suspect.",
			Recorded: &model.AnalysisResult{
				RiskScore: 90,
				Category:  model.CategoryPhishingLink,
				Flags:     []string{"Quishing", "Sticker Overlay", "Generic Domain"},
				TechnicalSignals: []string{
					"Parking payment served from a .biz domain",
					"Code printed on an overlay sticker",
				},
				PreventiveAction: "Block URL Load",
				SafeActionAdvice: "Pay through the official city parking app or the meter itself.",
			},
		},
	}
}
