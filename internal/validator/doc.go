// Package validator collects front-matter lint issues and writes them out.
//
// # Core Concepts
//
//   - [Issue]: a single violated rule, tied to the file and field it concerns.
//   - [Result]: the issues found in one file.
//   - [Reporter]: writes each issue as one plain line,
//     "In file <path>, <message>".
//
// # Basic Usage
//
//	result := validator.NewResult(path)
//	if _, ok := meta["title"]; !ok {
//		result.Add("title", "missing `title` in front-matter")
//	}
//	if err := validator.NewReporter(os.Stdout).Report(result); err != nil {
//		return err
//	}
package validator
