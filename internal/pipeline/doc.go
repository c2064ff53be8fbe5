// Package pipeline runs the validation of a site as a sequence of steps.
//
// A run enumerates the page files of the site, then for every page reads
// and parses it once and hands it to each page step in order. After the
// last page, every site step runs once over the full page list. One
// *model.Report is created per run and passed explicitly to every step;
// steps record findings on it and nothing else holds it.
//
// The pass is strictly sequential so findings keep a stable order and two
// runs over the same tree produce identical reports.
package pipeline
