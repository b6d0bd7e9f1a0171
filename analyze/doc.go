// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analyze derives social-choice results and voter-behavior
statistics from normalized ballots and tabulation rounds.

The pairwise matrix counts, for every ordered candidate pair, the
ballots preferring one over the other; a candidate ranked on a ballot
beats every candidate ranked below it and every candidate left
unranked. From the matrix the package computes the Smith set and, when
the set is a singleton, the Condorcet winner, so a report can show
whether the ranked-choice winner was also the head-to-head favorite.

The distribution helpers summarize how voters ranked: where each
candidate's first-choice supporters put their second choice, where they
ended up among the finalists, and how many ranks ballots used overall
and per first choice.

Everything here is a pure function of its inputs; Report bundles the
pieces into a ContestReport.
*/
package analyze
