package plan

// proposalPrompt is the prompt template for proposing a task breakdown
// for a run objective.
const proposalPrompt = `Break this writing objective into tasks for a team of autonomous agents collaborating on one shared document.

Objective:
%s

Return ONLY a JSON array of tasks with this exact structure (no other text):
[
  {
    "key": "short-kebab-case-key",
    "title": "Short task title",
    "type": "research|write|review|qa|synthesis",
    "depends_on": ["key of dependency 1"],
    "scope": {"from": 1, "to": 40},
    "acceptance_criteria": ["Criteria to verify this task is complete"]
  }
]

CRITICAL: Scope Rules
- scope declares the section range of the document this task will edit
- Two write tasks with overlapping scopes CANNOT coexist; they will be rejected
- Use {"label": "references"} for named regions instead of numeric ranges
- Only write tasks need a scope; research, review, qa and synthesis tasks may omit it

Task Type Classification:
- research: gather sources and facts before writing
- write: produce document content inside the declared scope
- review: assess content another task produced
- qa: check consistency, citations and style across the document
- synthesis: merge and reconcile the work of other tasks

Guidelines:
- depends_on references other task keys; no circular dependencies
- Keep write tasks narrow enough that one agent can finish each
- Put review and qa tasks after the write tasks they inspect`
