// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of browser-driven end-to-end tests.
//
// The general model is:
//
// 1. The application under test is an external collaborator. The harness only waits for it
// to be reachable (see AwaitService) and then drives it through a browser and an HTTP API.
//
// 2. Scenarios are organized in a tree of groups. Each group declares an explicit, ordered
// list of setup phases. Before every scenario, the phases of all of its ancestor groups are
// run from the outermost group to the innermost one, followed by the scenario body.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A failure in one scenario, whether in a setup phase or in the
// body, never prevents its siblings from running.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// ScopeFactory that creates the per-scenario resources (such as a fresh browser page), the
// setup phases, and a domain-specific test API on top of the test context.
package framework
