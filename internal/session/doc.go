// Package session implements the scan session state machine and the
// overlay visibility controller.
//
// A Controller owns the only mutable ScanSession. Presentation layers call
// its operations (StartScan, Close, Dismiss, Act, OpenOverlay,
// ToggleProtection) and observe it through Snapshot or Subscribe.
//
//	Idle ──StartScan──▶ Scanning ──verdict + Settle──▶ Complete
//	  ▲                    │                              │
//	  │                    └──classifier absent/panic──▶ Error
//	  └──────── Close (if still Complete) / Dismiss / Act ─┘
//
// Deferred transitions are scheduled on a Clock with the durations held in
// Timings, so tests drive time explicitly.
//
// Design decision: Every StartScan bumps a generation counter. Verdicts and
// settle callbacks carry the generation they were started under and are
// dropped if a newer scan has begun, so a slow verdict can never overwrite
// a newer scan. Close, Dismiss and Act do not bump the generation: a verdict
// that arrives after the user dismissed a scan still lands in the session,
// and deferred resets scheduled before a newer scan are skipped.
package session
