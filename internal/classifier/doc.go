// Package classifier turns a piece of text into a risk verdict.
//
// The verdict comes from an external generative model behind a fixed
// contract: a system instruction, the raw text and a JSON response schema
// go out, and a JSON object with exactly the AnalysisResult fields comes
// back. Nothing in this package scores text on its own.
//
// Two implementations exist:
//   - Gemini calls the Google Gemini API through google.golang.org/genai.
//   - Replay answers with recorded verdicts for known texts. It is used
//     when no API key is configured and in tests.
//
// Design decision: Analyze never returns an error. Every transport,
// parse, empty-response or missing-field failure is logged and turned
// into the Fallback verdict, so the caller always has something to show.
// The fallback scores 0, which means no remediation action is offered for
// a verdict nobody actually produced.
package classifier
