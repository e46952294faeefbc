// Package drive models the multi-dimensional motivational state feeding the
// workspace's attention gate. Each drive breaks into interacting facets
// (pain into physical, existential and frustration; curiosity into
// epistemic, diversive and specific; boredom into understimulation and
// satiation) that update on success, failure, exploration and the passage of
// cycles, then aggregate into the flat vector the gate consumes.
package drive
