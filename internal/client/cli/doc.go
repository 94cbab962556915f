// Package cli provides the interactive Sisimpur command-line client.
//
// It wires configuration, local storage, the API client and the application
// services into an interactive REPL. Typical flow: revalidate any persisted
// session, then execute user commands.
//
// Key features:
//   - Login / Signup / OTP sign-in / Logout
//   - Upload documents and watch question generation jobs
//   - List jobs, show generated questions, delete jobs
//   - Take exams and flip flashcards over generated questions
//   - Show exam results and the leaderboard
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
