// Design notes for the trivia game.
//
// One participant creates a room and becomes the host; the server hands back
// a short room code that the others type in (or scan via the QR link) to
// join as players.
//
// The host runs the show in rounds. Each round has a single question type:
//
//   - Multiple-choice: every player answers within a fixed window while the
//     server broadcasts a countdown. Answers are compared case-insensitively
//     against the correct choice for a provisional score the host can adjust.
//   - Buzzer: untimed. The first player to buzz holds the floor; the host can
//     reset the buzzers outright, re-sync lock states, or lock out the last
//     answerer and open the floor to everyone else.
//   - Sequence: the host reveals clues one at a time; earlier correct guesses
//     are worth more points, per the schedule shown to the host.
//
// Points are only committed when the host confirms them, which updates both
// the round totals and the cumulative scores in one step. Between rounds the
// host can show the cumulative scoreboard, and ends the show with a final
// one.
//
// Implementation details:
//   - Players are identified by cookie, so reconnecting within the grace
//     period keeps their score.
//   - The room ends when the host disconnects; everyone is notified.
package games
