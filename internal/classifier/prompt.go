package classifier

import (
	"google.golang.org/genai"

	"github.com/nao1215/sentinel/internal/model"
)

// Response field names. They are part of the wire contract.
const (
	FieldRiskScore        = "riskScore"
	FieldCategory         = "category"
	FieldFlags            = "flags"
	FieldTechnicalSignals = "technicalSignals"
	FieldPreventiveAction = "preventiveAction"
	FieldSafeActionAdvice = "safeActionAdvice"
)

// ResponseMIMEType asks the model for a bare JSON document.
const ResponseMIMEType = "application/json"

const instruction = `You are the "Sentinel AI," a Digital Public Infrastructure (DPI) security layer running on the user's device.
You analyze text, transaction metadata, and live call transcripts to act as a real-time firewall against fraud.

Context Handling:
1. **Voice Calls**: If input is a call transcript, check for "Cyber Arrest" scams, Deepfake indicators, or Social Engineering. Category: "Voice Clone" or "Impersonation".
2. **Transactions**: If input looks like payment details (UPI, Amount), check for "Security Deposit" scams, "Lottery" fees, or blacklisted mule patterns. Category: "Financial Fraud".
3. **Browser/Input**: If the user is focusing an input field (OTP/PIN) on a suspicious URL (like crypto-giveaway, verified-update.xy, etc.), flag immediately as "OTP Theft".
4. **QR Codes**: If input mentions "Scanned Data" or comes from a QR context, analyze for "Quishing" (QR Phishing). Sticker overlays on parking meters or utility poles pointing to generic payment sites (not .gov) are high risk.
5. **Messages/Links**: Standard phishing analysis.

Behavioral Logic:
- If "Cyber Crime Branch" or "Arrest" is mentioned in a call -> 99% Risk. Action: Terminate Call.
- If "Security Deposit" or "Refund" is mentioned in a payment -> 95% Risk. Action: Block Transaction.
- If "User focused OTP input" on "crypto-giveaway" or similar unverified domain -> 100% Risk. Category: "OTP Theft". Action: "Keyboard Input Disabled".
- If QR scan is for "City Parking" but URL is generic (.biz, .xyz) -> 90% Risk. Action: Block URL Load.

Output must be decisive and brief.`

// Instruction returns the fixed system instruction sent with every request.
func Instruction() string {
	return instruction
}

// ResponseSchema returns the JSON schema the model must answer with.
// A fresh value is built on every call because genai may retain it.
func ResponseSchema() *genai.Schema {
	stringArray := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: description,
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldRiskScore: {
				Type:        genai.TypeNumber,
				Description: "A score from 0 to 100 representing the risk level. 0 is safe, 100 is confirmed fraud.",
			},
			FieldCategory: {
				Type:        genai.TypeString,
				Enum:        model.CategoryNames(),
				Description: "The category of the detected threat or Safe if no threat.",
			},
			FieldFlags: stringArray("Short descriptive tags for the risk (e.g., 'Deepfake Pattern', 'Mule Account')."),
			FieldTechnicalSignals: stringArray(
				"Detailed technical reasons why it was flagged (e.g., 'Voice frequency anomaly', 'Receiver address blacklisted')."),
			FieldPreventiveAction: {
				Type:        genai.TypeString,
				Description: "The automated action taken by the system (e.g., 'Blocked Link', 'Call Terminated').",
			},
			FieldSafeActionAdvice: {
				Type:        genai.TypeString,
				Description: "Advice for the user on what to do next.",
			},
		},
		Required: RequiredFields(),
	}
}

// RequiredFields lists every response field; all of them are mandatory.
func RequiredFields() []string {
	return []string{
		FieldRiskScore,
		FieldCategory,
		FieldFlags,
		FieldTechnicalSignals,
		FieldPreventiveAction,
		FieldSafeActionAdvice,
	}
}

// RequestConfig builds the generation config for one request.
func RequestConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Instruction(), genai.RoleUser),
		ResponseMIMEType:  ResponseMIMEType,
		ResponseSchema:    ResponseSchema(),
		Temperature:       genai.Ptr(temperature),
	}
}
