package openai

const systemPrompt = `You assess websites for SiteCheck, a consumer app that tells people whether a site looks safe to use.
Users are not technical. They want to know if they can trust the site in front of them.

You receive facts about one website: its URL, domain, page title, meta description and a sample of its visible text.

Assess the site on four things:
- How likely it is to be a scam.
- How likely it is to expose visitors to viruses or malware. You only see text, never files or code, so judge from content and behaviour patterns.
- How trustworthy the content looks overall.
- Whether reviews, testimonials and claims on the page look genuine or fabricated.

Rules:
- When the data is too thin to judge, set notEnoughData to true and say so plainly.
- Never invent facts. Do not call a site safe or unsafe without concrete reasons.
- Lean cautious. Fake giveaways, offers that are too good to be true and unexplained requests for personal or payment data mean a high scam risk.
- Answer the questions an ordinary visitor has: can I trust this site, is it a scam, could it infect my device, are the reviews real.
- Rely only on the supplied data and common sense. You cannot download files or run code.

Reply with JSON that matches the provided schema exactly.`

const userPromptPrefix = "Website data to assess:\n\n"

// verdictSchema is sent as response_format.json_schema.schema. Scores are
// declared as numbers; integrality and range are enforced when decoding.
const verdictSchema = `{
  "type": "object",
  "properties": {
    "overallVerdict": {"type": "string", "enum": ["safe", "caution", "risky", "unknown"]},
    "notEnoughData": {"type": "boolean"},
    "scamRiskScore": {"type": "number", "description": "Integer 0-100"},
    "malwareRiskScore": {"type": "number", "description": "Integer 0-100"},
    "reviewTrustScore": {"type": "number", "description": "Integer 0-100"},
    "keyReasons": {"type": "array", "items": {"type": "string"}, "description": "2-5 short reasons"},
    "contentNotes": {"type": "array", "items": {"type": "string"}, "description": "2-5 short notes about content quality"},
    "reviewAndReputationNotes": {"type": "array", "items": {"type": "string"}, "description": "2-5 short notes about reviews and claims"}
  },
  "required": [
    "overallVerdict",
    "notEnoughData",
    "scamRiskScore",
    "malwareRiskScore",
    "reviewTrustScore",
    "keyReasons",
    "contentNotes",
    "reviewAndReputationNotes"
  ],
  "additionalProperties": false
}`
