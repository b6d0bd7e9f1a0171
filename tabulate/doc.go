// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tabulate implements the ranked-choice elimination state machine.

# Algorithm

Tabulate consumes normalized ballots and produces an ordered sequence of
rounds. Each round:

 1. Groups active ballots by current top choice; ballots with no valid
    next choice join the exhausted bucket (split into undervote and
    overvote causes for reporting).
 2. Sorts still-standing candidates by votes descending, ties broken by
    ascending candidate id.
 3. Stops once two or fewer candidates remain.
 4. Eliminates the lowest-vote candidate — or, in eager mode, every
    candidate at or below the mathematical-loser cutoff.
 5. Advances each eliminated candidate's ballots to their next
    still-standing choice and records one transfer per (from, to) pair,
    attached to the following round.

# Options

  - Eager: compress rounds by eliminating every candidate guaranteed to
    lose; the final winner matches sequential elimination.
  - NYCStyle: exclude inactive ballots from the round-0 exhausted tally,
    matching NYC's reporting convention; rounds 1+ count exhaustion
    normally.

# Guarantees

Tabulation is a deterministic pure function of (ballots, options). Every
ballot lands in exactly one allocation per round, eliminated candidates
never reappear, and a contest with zero ballots yields zero rounds. The
loop is capped at MaxRounds and surfaces ErrRoundCapExceeded as a
data-defect signal rather than truncating silently.
*/
package tabulate
