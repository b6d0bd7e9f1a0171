// Copyright (c) 2026 OpenBallot.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared data types of the tabulation pipeline.

# Ballot Types

Pre-normalization types produced by format readers:

  - Candidate: name plus type (regular, write-in, qualified write-in)
  - CandidateID: dense, zero-based index into a contest's candidate list
  - Choice: one ranking position — Vote(id), Undervote, or Overvote
  - Ballot: ordered mark sequence for one voter
  - Election: candidates plus ballots for one contest

Post-normalization types consumed by the tabulator:

  - NormalizedBallot: deduplicated ranked candidate list plus overvote flag
  - NormalizedElection: candidates plus normalized ballots

# Tabulation Types

  - Allocatee: a candidate still standing, or the Exhausted bucket
  - Allocation: one vote bucket within a round
  - Transfer: ballots moved out of an eliminated candidate
  - Round: allocations, exhaustion counts, and incoming transfers

# Report Types

  - ContestReport: rounds plus the full social-choice analysis
  - PairwiseTable: head-to-head preference matrix
  - TransferDistribution: first-alternate and first-final distributions
  - CandidateVotes: per-candidate vote summary
  - ReportIndex / ElectionIndexEntry / ContestIndexEntry: published index

# Metadata Types

  - Jurisdiction, ElectionMetadata, Contest, Office: the election-metadata
    tree read from disk that drives the pipeline

All types are created fresh per contest; nothing here carries state across
contests.
*/
package models
