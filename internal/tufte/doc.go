// Package tufte rewrites mdast trees into the markup tufte-css expects.
//
// Each pass recognizes one pattern and rewrites matches in place:
//   - sections: wrap every level-2 heading and its content in <section>
//   - attribution: wrap :cite markers inside block quotes in <footer>
//   - cite: turn :cite markers into links to a reference definition
//   - newthought: render :nt markers as <span class="newthought">
//   - image-figure: wrap paragraph images in <figure> with a margin caption
//   - directives: expand :::figure and :::sans containers
//   - sidenotes: turn footnotes into numbered sidenotes or {-} margin notes
//
// Passes mostly emit raw-markup leaves (mdast.KindHTML), which later passes
// never look into. A Pipeline runs a named selection of passes in order and
// stops at the first error.
package tufte
