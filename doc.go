// Package bitpart is an offline metric-space range-search index: build it
// once from a dataset and a distance function, then ask it — repeatedly and
// concurrently — which dataset points lie within a given radius of a query
// point.
//
// The index accelerates range_search by pre-computing, for every dataset
// point, a compact bit-pattern of membership in a family of geometric
// exclusion regions anchored at a handful of reference points. At query
// time, the query's own must-include / must-exclude pattern against those
// regions prunes most of the dataset before any distance is actually
// computed.
//
// bitpart returns all points within the threshold — it has no notion of k
// nearest neighbours, no approximate mode, and no support for inserting or
// removing points after Build. See metric.Space for the distance contract a
// point type must satisfy.
package bitpart
