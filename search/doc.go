// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search provides fuzzy and semantic search over the memory journal.
//
// The ranking engine is a set of pure functions that combine:
//   - Fuzzy matching based on Levenshtein edit distance and substring
//     containment (EditDistance, FuzzyScore)
//   - Semantic matching based on a fixed synonym table for memory-related
//     terms (ExpandKeywords, SemanticScore)
//   - Per-item scoring across scalar and list fields with an exact-match
//     boost (Score), ranking (SortByRelevance), result highlighting
//     (Highlight), and autocomplete (Suggestions)
//
// All scores lie in [0,1] and absent or empty inputs degrade to 0 rather
// than errors. The functions are side-effect free and safe for concurrent
// use.
//
// The Searcher type wires the engine to the storage repositories: it loads
// the candidate records, scores them concurrently on a worker pool, filters
// by a relevance threshold, and returns ranked results.
package search
