// Package matchmaker groups parsed participants into teams that favour skill
// diversity.
//
// The algorithm is greedy: the participant with the most skills seeds a team
// and is joined by the unused participants whose skills overlap least with the
// seed's. Overlap is measured against the seed only, not the growing team.
package matchmaker

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sant0-9/hacktwin/internal/roster"
)

// ErrInvalidArgument is returned for a non-positive team size.
var ErrInvalidArgument = errors.New("invalid argument")

// Team is an ordered list of participant names, seed first.
type Team []string

type candidate struct {
	pos     int
	overlap int
	skills  int
}

// Matchmake partitions participants into teams of teamSize. Every participant
// lands in exactly one team; a short final team is possible. The result is
// deterministic for a given input order.
func Matchmake(participants []roster.Participant, teamSize int) ([]Team, error) {
	if len(participants) == 0 {
		return []Team{}, nil
	}
	if teamSize <= 0 {
		return nil, fmt.Errorf("%w: team size must be at least 1, got %d", ErrInvalidArgument, teamSize)
	}

	pool := slices.Clone(participants)
	slices.SortStableFunc(pool, func(a, b roster.Participant) int {
		return cmp.Compare(len(b.Skills), len(a.Skills))
	})

	used := make([]bool, len(pool))
	var teams []Team

	for i, seed := range pool {
		if used[i] {
			continue
		}
		used[i] = true
		team := Team{seed.Name}

		if needed := teamSize - 1; needed > 0 {
			seedSkills := skillSet(seed.Skills)

			var candidates []candidate
			for j, p := range pool {
				if used[j] {
					continue
				}
				candidates = append(candidates, candidate{
					pos:     j,
					overlap: overlap(seedSkills, p.Skills),
					skills:  len(p.Skills),
				})
			}
			// fewest shared skills first, then the richer profile
			slices.SortStableFunc(candidates, func(a, b candidate) int {
				if c := cmp.Compare(a.overlap, b.overlap); c != 0 {
					return c
				}
				return cmp.Compare(b.skills, a.skills)
			})

			for _, c := range candidates[:min(needed, len(candidates))] {
				team = append(team, pool[c.pos].Name)
				used[c.pos] = true
			}
		}
		teams = append(teams, team)
	}

	// leftovers join the last team formed
	for j, p := range pool {
		if used[j] {
			continue
		}
		used[j] = true
		if len(teams) == 0 {
			teams = append(teams, Team{p.Name})
			continue
		}
		teams[len(teams)-1] = append(teams[len(teams)-1], p.Name)
	}

	return teams, nil
}

// Format renders teams as "Team <n>: name1, name2, ...".
func Format(teams []Team) []string {
	lines := make([]string, 0, len(teams))
	for i, t := range teams {
		lines = append(lines, fmt.Sprintf("Team %d: %s", i+1, strings.Join(t, ", ")))
	}
	return lines
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// overlap counts distinct skills of other that are also in set.
func overlap(set map[string]struct{}, other []string) int {
	n := 0
	for s := range skillSet(other) {
		if _, ok := set[s]; ok {
			n++
		}
	}
	return n
}
