package dialogue

// Outcome is the result of handling one inbound event.
type Outcome string

const (
	OutcomeHelpShown          Outcome = "help_shown"
	OutcomeFormatted          Outcome = "formatted"
	OutcomeFormatRejected     Outcome = "format_rejected"
	OutcomeInputRejected      Outcome = "input_rejected"
	OutcomeQueryTooShort      Outcome = "query_too_short"
	OutcomeNoResults          Outcome = "no_results"
	OutcomeSearchFailed       Outcome = "search_failed"
	OutcomeResultsListed      Outcome = "results_listed"
	OutcomeCardDelivered      Outcome = "card_delivered"
	OutcomeCardDegraded       Outcome = "card_degraded" // Cover could not be attached; text only
	OutcomeDetailsUnavailable Outcome = "details_unavailable"
	OutcomePageChanged        Outcome = "page_changed"
	OutcomePageEmpty          Outcome = "page_empty"
	OutcomeSessionExpired     Outcome = "session_expired"
	OutcomeOwnershipRefused   Outcome = "ownership_refused"
	OutcomeMalformedToken     Outcome = "malformed_token"
	OutcomeIgnored            Outcome = "ignored"
	OutcomeFailed             Outcome = "failed"
)
