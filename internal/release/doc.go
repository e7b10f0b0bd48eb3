// Package release defines the candidate data contract shared by the search
// workflow and the Sportarr client, plus the cross-part mismatch detector
// that annotates candidates with consistency warnings.
package release
