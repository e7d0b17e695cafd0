// Package report formats validation failures for users and delivers them to
// a sink.
//
// Reporters never abort the caller: a failed argument or setting is reported
// and resolution continues. LogReporter writes through zerolog, Collector
// keeps reports in memory, and Suggest offers "did you mean" candidates for
// mistyped names.
package report
